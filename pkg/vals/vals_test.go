package vals

import (
	"math"
	"testing"

	"src.noviq.dev/pkg/tt"
)

var Args = tt.Args

func TestKind(t *testing.T) {
	tt.Test(t, Kind,
		Args(int64(1)).Rets("integer"),
		Args(float32(1.5)).Rets("float"),
		Args(true).Rets("boolean"),
		Args("x").Rets("string"),
		Args(nil).Rets("nil"),
		Args(1).Rets("!!int"),
	)
}

func TestTruthy(t *testing.T) {
	tt.Test(t, Truthy,
		Args(true).Rets(true),
		Args(false).Rets(false),
		Args(int64(0)).Rets(false),
		Args(int64(-3)).Rets(true),
		Args(float32(0)).Rets(false),
		Args(float32(0.5)).Rets(true),
		Args("").Rets(false),
		Args("x").Rets(true),
		Args(nil).Rets(false),
	)
}

func TestToFloat(t *testing.T) {
	tt.Test(t, ToFloat,
		Args(int64(3)).Rets(float32(3), true),
		Args(float32(2.5)).Rets(float32(2.5), true),
		Args(true).Rets(float32(1), true),
		Args(false).Rets(float32(0), true),
		Args("1").Rets(float32(0), false),
	)
}

func TestToString(t *testing.T) {
	tt.Test(t, ToString,
		Args(int64(-42)).Rets("-42"),
		Args(float32(3.5)).Rets("3.500000"),
		Args(float32(0.1)).Rets("0.100000"),
		Args(true).Rets("true"),
		Args(false).Rets("false"),
		Args("hello").Rets("hello"),
	)
}

func TestIsFloat(t *testing.T) {
	tt.Test(t, IsFloat,
		Args("1.5").Rets(true),
		Args("-1.5").Rets(true),
		Args("1.").Rets(true),
		Args("15").Rets(false),
		Args("1.2.3").Rets(false),
		Args("1.5x").Rets(false),
		Args("").Rets(false),
	)
}

func TestParseNumber(t *testing.T) {
	tt.Test(t, ParseNumber,
		Args("42").Rets(int64(42), true),
		Args("-7").Rets(int64(-7), true),
		Args("2.5").Rets(float32(2.5), true),
		Args("-0.25").Rets(float32(-0.25), true),
		// Lenient prefix parsing.
		Args("12ab").Rets(int64(12), true),
		Args("1.2.3").Rets(int64(1), true),
		Args("3*4").Rets(int64(3), true),
		Args("99999999999999999999").Rets(int64(math.MaxInt64), true),

		Args("x").Rets(nil, false),
		Args("-x").Rets(nil, false),
		Args(".5").Rets(nil, false),
		Args("").Rets(nil, false),
	)
}

func TestUnquote(t *testing.T) {
	tt.Test(t, Unquote,
		Args(`"abc"`).Rets("abc", true),
		Args(`'a b'`).Rets("a b", true),
		Args(`""`).Rets("", true),
		Args(`"it's"`).Rets("it's", true),
		Args(`"abc`).Rets("", false),
		Args(`"a"b"`).Rets("", false),
		Args(`"a'`).Rets("", false),
		Args(`abc`).Rets("", false),
		Args(`"`).Rets("", false),
	)
}

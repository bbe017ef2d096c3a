package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"src.noviq.dev/pkg/config"
	"src.noviq.dev/pkg/interp"
	"src.noviq.dev/pkg/parse"
)

// A file of conformance tests in testdata.
type conformanceSuite struct {
	Name  string            `yaml:"name"`
	Tests []conformanceTest `yaml:"tests"`
}

type conformanceTest struct {
	Name   string `yaml:"name"`
	Code   string `yaml:"code"`
	Stdin  string `yaml:"stdin,omitempty"`
	Expect struct {
		// Everything written to stdout, including prompts of input.
		Output string `yaml:"output,omitempty"`
		// Text of the error that stops the script, empty if there is none.
		Error string `yaml:"error,omitempty"`
	} `yaml:"expect"`
}

func loadConformanceSuites(t *testing.T) []conformanceSuite {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no conformance tests found")
	}
	var suites []conformanceSuite
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatal(err)
		}
		var suite conformanceSuite
		if err := yaml.Unmarshal(data, &suite); err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}
		suites = append(suites, suite)
	}
	return suites
}

func TestConformance(t *testing.T) {
	for _, suite := range loadConformanceSuites(t) {
		for _, test := range suite.Tests {
			test := test
			t.Run(suite.Name+"/"+test.Name, func(t *testing.T) {
				var out strings.Builder
				stdin := interp.NewLineReader(strings.NewReader(test.Stdin), &out)
				err := newInterpreter(config.Default(), &out, stdin).
					Eval(parse.SourceForTest(test.Code))

				if got := out.String(); got != test.Expect.Output {
					t.Errorf("got output %q, want %q", got, test.Expect.Output)
				}
				var gotErr string
				if err != nil {
					gotErr = err.Error()
				}
				if gotErr != test.Expect.Error {
					t.Errorf("got error %q, want %q", gotErr, test.Expect.Error)
				}
			})
		}
	}
}

// Command bucketseed writes a ready-to-run scenario YAML file so
// bucketbench has something to execute out of the box.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Scenario mirrors cmd/bucketbench's Scenario shape. It is redeclared here,
// not imported, so bucketseed stays a standalone single-file tool the way
// tk-seed does not depend on tk-bench's package.
type Scenario struct {
	Container       string         `yaml:"container"`
	Capacity        int            `yaml:"capacity"`
	Goroutines      int            `yaml:"goroutines"`
	OpsPerGoroutine int            `yaml:"opsPerGoroutine"`
	Mix             map[string]int `yaml:"mix"`
}

func defaultScenario(container string) Scenario {
	switch container {
	case "bucket":
		return Scenario{
			Container: "bucket", Capacity: 64, Goroutines: 8, OpsPerGoroutine: 20000,
			Mix: map[string]int{"insert": 2, "get": 3, "remove": 1},
		}
	case "hashbucket":
		return Scenario{
			Container: "hashbucket", Capacity: 64, Goroutines: 8, OpsPerGoroutine: 20000,
			Mix: map[string]int{"add": 2, "contains": 3, "remove": 1},
		}
	case "fixeddeque":
		return Scenario{
			Container: "fixeddeque", Capacity: 64, Goroutines: 8, OpsPerGoroutine: 20000,
			Mix: map[string]int{"addFront": 2, "addBack": 2, "takeFront": 2, "takeBack": 2},
		}
	default:
		return Scenario{
			Container: "deque", Capacity: 64, Goroutines: 8, OpsPerGoroutine: 20000,
			Mix: map[string]int{"addFront": 2, "addBack": 3, "takeFront": 2, "takeBack": 2},
		}
	}
}

func main() {
	container := flag.StringP("container", "c", "deque", "container kind: bucket, hashbucket, fixeddeque, or deque")
	outPath := flag.StringP("out", "o", "scenario.yaml", "path to write the scenario file to")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: bucketseed --container deque --out scenario.yaml\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	switch *container {
	case "bucket", "hashbucket", "fixeddeque", "deque":
	default:
		fmt.Fprintf(os.Stderr, "error: unknown container %q\n", *container)
		os.Exit(1)
	}

	data, err := yaml.Marshal(defaultScenario(*container))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: encoding scenario: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outPath, data, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", *outPath, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (container=%s)\n", *outPath, *container)
}

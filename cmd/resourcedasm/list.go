package main

import (
	"fmt"
	"os"

	"github.com/retrodasm/resourcedasm/container"
)

func openContainer(path string) (*container.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return container.Open(data, nil)
}

// runList prints every (type, id, name) triple in the container, one per
// line, in the same type-then-id enumeration order §8's parser-invariant
// property 4 checks (all_types() then all_resources_of_type(t)).
func runList(path string, verbose bool) error {
	c, err := openContainer(path)
	if err != nil {
		return err
	}
	for _, t := range c.AllTypes() {
		for _, id := range c.AllResourcesOfType(t) {
			name, err := c.GetResourceName(t, id)
			if err != nil && verbose {
				fmt.Fprintf(os.Stderr, "%s %d: %v\n", t, id, err)
			}
			fmt.Printf("%s\t%d\t%s\n", t, id, name)
		}
	}
	return nil
}

// runListTypes prints the dispatch table's supported resource types, for
// `resourcedasm list-types`.
func runListTypes() {
	types := supportedTypesSorted()
	for _, t := range types {
		fmt.Println(t)
	}
}

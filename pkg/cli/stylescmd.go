package cli

import (
	"fmt"
	"strings"

	"github.com/Fepozopo/darkroom/pkg/style"
)

func cmdStyles(args []string) int {
	reg := style.NewRegistry()
	for _, name := range reg.Names() {
		s, err := reg.Get(name)
		if err != nil {
			continue
		}
		ops := make([]string, len(s.Settings))
		for i, set := range s.Settings {
			ops[i] = set.Op
		}
		fmt.Printf("%-10s %s\n", name, s.Description)
		fmt.Printf("%-10s %s\n", "", strings.Join(ops, " -> "))
	}
	return 0
}

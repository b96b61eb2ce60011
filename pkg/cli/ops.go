package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Fepozopo/darkroom/pkg/stdimg"
)

func cmdOps(args []string) int {
	fs := flag.NewFlagSet("ops", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "emit the catalog with validation rules as JSON")
	pick := fs.Bool("pick", false, "choose an operation with fzf and show its help")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *pick {
		name, err := SelectOpWithFzf(stdimg.Ops)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		op, ok := stdimg.LookupOp(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown operation %q\n", name)
			return 1
		}
		printOpHelp(op, *asJSON)
		return 0
	}

	if name := fs.Arg(0); name != "" {
		op, ok := stdimg.LookupOp(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown operation %q\n", name)
			return 1
		}
		printOpHelp(op, *asJSON)
		return 0
	}

	if *asJSON {
		helps := make([]OpHelp, 0, len(stdimg.Ops))
		for _, op := range stdimg.Ops {
			helps = append(helps, HelpForOp(op))
		}
		data, err := json.MarshalIndent(helps, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	group := ""
	for _, op := range stdimg.Ops {
		if op.Group != group {
			group = op.Group
			fmt.Printf("\n[%s]\n", group)
		}
		fmt.Printf("  %-12s %s\n", op.Name, op.Description)
	}
	return 0
}

func printOpHelp(op stdimg.OpSpec, asJSON bool) {
	if asJSON {
		data, err := json.MarshalIndent(HelpForOp(op), "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Println(string(data))
		return
	}
	fmt.Println(op.Usage)
	fmt.Println(Tooltip(op))
}

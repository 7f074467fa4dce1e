package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/javelin-vm/javelin/loader"
)

var infoCmd = &cobra.Command{
	Use:   "info <image>",
	Short: "Show the contents of a program image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loader.LoadImage(args[0])
		if err != nil {
			return err
		}

		names := make([]string, 0, len(prog.Classes()))
		for name := range prog.Classes() {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("classes: %d, methods: %d\n", len(names), prog.NumMethods())
		if prog.Entry.Sig != "" {
			fmt.Printf("entry: %s\n", prog.Entry)
		}
		for _, name := range names {
			c := prog.Classes()[name]
			fmt.Printf("\n%s", color.CyanString(name))
			if c.Super != "" {
				fmt.Printf(" extends %s", c.Super)
			}
			fmt.Println()
			for _, m := range c.Methods {
				tag := ""
				if m.Descriptor.IsNative() {
					tag = color.MagentaString(" [native]")
				}
				fmt.Printf("  %s%s (%d blocks)\n", m.Descriptor.Signature(), tag, len(m.Blocks))
			}
		}
		return nil
	},
}

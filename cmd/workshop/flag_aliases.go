package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var priorityFlagAliases = map[string]string{
	"prio": "priority",
}

var preferenceFlagAliases = map[string]string{
	"auto_save": "auto-save",
	"autosave":  "auto-save",
}

func addFlagAliases(aliases map[string]string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		setFlagAliases(cmd.Flags(), aliases)
	}
}

func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return normalize(f, name)
	})
}

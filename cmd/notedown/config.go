package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/notedown/core/parameters"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// readConfig reads a YAML configuration file into a flat configuration.
// Nested keys are joined by dots, lists are joined by commas:
//
//	notedown:
//	  styles: [a.css, b.css]
//	  sequential: true
//
// yields notedown.styles = "a.css,b.css" and notedown.sequential = "true".
func readConfig(path string) (testconfig.Conf, error) {
	conf := testconfig.Conf{}
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read configuration file %s", path)
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "configuration file %s is malformed", path)
	}
	flatten(conf, "", tree)
	return conf, nil
}

func flatten(conf testconfig.Conf, prefix string, tree map[string]interface{}) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]interface{}:
			flatten(conf, key, v)
		case []interface{}:
			items := make([]string, len(v))
			for i, item := range v {
				items[i] = fmt.Sprint(item)
			}
			conf[key] = strings.Join(items, ",")
		case nil:
		default:
			conf[key] = fmt.Sprint(v)
		}
	}
}

// boolFlags maps boolean command line flags to configuration keys.
var boolFlags = map[string]parameters.CompilerParameter{
	"styledoc":         parameters.P_INLINESTYLES,
	"no-default-style": parameters.P_NODEFAULTSTYLE,
	"no-default-emoji": parameters.P_NODEFAULTEMOJI,
	"no-emoji":         parameters.P_NOEMOJI,
	"sequential":       parameters.P_SEQUENTIAL,
}

// applyFlags overrides conf with the flags set on the command line. List
// flags are appended to lists from the configuration file.
func applyFlags(cmd *cobra.Command, conf testconfig.Conf) {
	flags := cmd.Flags()
	names := make([]string, 0, len(boolFlags))
	for name := range boolFlags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if flags.Changed(name) {
			b, _ := flags.GetBool(name)
			conf[boolFlags[name].Key()] = fmt.Sprint(b)
		}
	}
	if b, _ := flags.GetBool("no-default"); b {
		conf[parameters.P_NODEFAULTSTYLE.Key()] = "true"
		conf[parameters.P_NODEFAULTEMOJI.Key()] = "true"
	}
	appendList := func(flag string, p parameters.CompilerParameter) {
		if !flags.Changed(flag) {
			return
		}
		list, _ := flags.GetStringArray(flag)
		if prev, ok := conf[p.Key()]; ok && fmt.Sprint(prev) != "" {
			list = append(parameters.SplitList(fmt.Sprint(prev)), list...)
		}
		conf[p.Key()] = strings.Join(list, ",")
	}
	appendList("style", parameters.P_STYLESHEETS)
	appendList("emoji", parameters.P_EMOJITABLES)
	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		conf[parameters.P_TITLE.Key()] = title
	}
}

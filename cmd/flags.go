package cmd

import (
	"strings"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

// The axis flags below implement pflag.Value. List flags accept both
// repeated occurrences and comma-separated values.

type platformList struct {
	values []axis.Platform
}

func (l *platformList) String() string { return joinStringers(l.values) }
func (l *platformList) Type() string   { return "platform" }

func (l *platformList) Set(v string) error {
	for _, token := range strings.Split(v, ",") {
		platform, err := axis.ParsePlatform(strings.TrimSpace(token))
		if err != nil {
			return err
		}
		l.values = append(l.values, platform)
	}
	return nil
}

type configurationList struct {
	values []axis.Configuration
}

func (l *configurationList) String() string { return joinStringers(l.values) }
func (l *configurationList) Type() string   { return "configuration" }

func (l *configurationList) Set(v string) error {
	for _, token := range strings.Split(v, ",") {
		configuration, err := axis.ParseConfiguration(strings.TrimSpace(token))
		if err != nil {
			return err
		}
		l.values = append(l.values, configuration)
	}
	return nil
}

type linkageList struct {
	values []axis.Linkage
}

func (l *linkageList) String() string { return joinStringers(l.values) }
func (l *linkageList) Type() string   { return "linkage" }

func (l *linkageList) Set(v string) error {
	for _, token := range strings.Split(v, ",") {
		linkage, err := axis.ParseLinkage(strings.TrimSpace(token))
		if err != nil {
			return err
		}
		l.values = append(l.values, linkage)
	}
	return nil
}

type linkageValue struct {
	value axis.Linkage
}

func (v *linkageValue) String() string { return v.value.String() }
func (v *linkageValue) Type() string   { return "linkage" }

func (v *linkageValue) Set(s string) error {
	linkage, err := axis.ParseLinkage(s)
	if err != nil {
		return err
	}
	v.value = linkage
	return nil
}

type platformValue struct {
	value axis.Platform
}

func (v *platformValue) String() string { return v.value.String() }
func (v *platformValue) Type() string   { return "platform" }

func (v *platformValue) Set(s string) error {
	platform, err := axis.ParsePlatform(s)
	if err != nil {
		return err
	}
	v.value = platform
	return nil
}

type configurationValue struct {
	value axis.Configuration
}

func (v *configurationValue) String() string { return v.value.String() }
func (v *configurationValue) Type() string   { return "configuration" }

func (v *configurationValue) Set(s string) error {
	configuration, err := axis.ParseConfiguration(s)
	if err != nil {
		return err
	}
	v.value = configuration
	return nil
}

type toolsetValue struct {
	value toolset.Spec
}

func (v *toolsetValue) String() string { return v.value.String() }
func (v *toolsetValue) Type() string   { return "toolset" }

func (v *toolsetValue) Set(s string) error {
	spec, err := toolset.ParseSpec(s)
	if err != nil {
		return err
	}
	v.value = spec
	return nil
}

func joinStringers[T interface{ String() string }](values []T) string {
	tokens := make([]string, len(values))
	for i, v := range values {
		tokens[i] = v.String()
	}
	return strings.Join(tokens, ",")
}

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/service"
)

func init() {
	Register(&ProfileCmd{})
	Register(&SettingsCmd{})
}

// ProfileCmd shows the profile when run bare and updates it when flags are
// given.
type ProfileCmd struct {
	name   string
	avatar string

	nameSet   bool
	avatarSet bool
}

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return nil }
func (c *ProfileCmd) Synopsis() string  { return "Show or update the profile" }
func (c *ProfileCmd) Usage() string     { return "taskdeck profile [--name <n>] [--avatar <url>]" }
func (c *ProfileCmd) NeedsAuth() bool   { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("name", "", func(v string) error {
		c.name, c.nameSet = v, true
		return nil
	})
	fs.Func("avatar", "", func(v string) error {
		c.avatar, c.avatarSet = v, true
		return nil
	})
}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !c.nameSet && !c.avatarSet {
		p, err := svc.Profile(ctx)
		if err != nil {
			return backendFail(errOut, err)
		}
		output.FormatProfile(out, p)
		return exitcode.Success
	}

	var patch service.ProfilePatch
	if c.nameSet {
		patch.Name = &c.name
	}
	if c.avatarSet {
		patch.AvatarURL = &c.avatar
	}

	if _, err := svc.UpdateProfile(ctx, patch); err != nil {
		return backendFail(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// SettingsCmd shows the settings when run bare and updates them when flags
// are given.
type SettingsCmd struct {
	theme string
	style string
	lang  string

	themeSet bool
	styleSet bool
	langSet  bool
}

func (c *SettingsCmd) Name() string      { return "settings" }
func (c *SettingsCmd) Aliases() []string { return nil }
func (c *SettingsCmd) Synopsis() string  { return "Show or update settings" }
func (c *SettingsCmd) Usage() string {
	return "taskdeck settings [--theme <t>] [--style <s>] [--lang <l>]"
}
func (c *SettingsCmd) NeedsAuth() bool { return true }

func (c *SettingsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("theme", "", func(v string) error {
		c.theme, c.themeSet = v, true
		return nil
	})
	fs.Func("style", "", func(v string) error {
		c.style, c.styleSet = v, true
		return nil
	})
	fs.Func("lang", "", func(v string) error {
		c.lang, c.langSet = v, true
		return nil
	})
}

func (c *SettingsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !c.themeSet && !c.styleSet && !c.langSet {
		s, err := svc.Settings(ctx)
		if err != nil {
			return backendFail(errOut, err)
		}
		output.FormatSettings(out, s)
		return exitcode.Success
	}

	var patch service.SettingsPatch
	if c.themeSet {
		patch.Theme = &c.theme
	}
	if c.styleSet {
		patch.AIResponseStyle = &c.style
	}
	if c.langSet {
		patch.Language = &c.lang
	}

	if _, err := svc.UpdateSettings(ctx, patch); err != nil {
		return backendFail(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

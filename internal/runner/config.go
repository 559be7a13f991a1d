package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nethoundsh/filetidy/pkg/config"
	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// RunConfig handles "config path", "config show" and "config init".
func RunConfig(app AppConfig, action string, force bool) int {
	switch action {
	case "path":
		fmt.Fprintln(app.Out, app.ConfigPath)
	case "show":
		b, err := json.MarshalIndent(app.Settings, "", "  ")
		if err != nil {
			return app.fail(fmt.Errorf("marshaling config: %w", err))
		}
		fmt.Fprintln(app.Out, string(b))
	case "init":
		if _, err := os.Stat(app.ConfigPath); err == nil && !force {
			return app.fail(fmt.Errorf("%s already exists (use --force to overwrite)", app.ConfigPath))
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return app.fail(err)
		}
		if err := config.Save(app.ConfigPath, config.Default()); err != nil {
			return app.fail(err)
		}
		fmt.Fprintln(app.Out, "Wrote", app.ConfigPath)
	default:
		return app.fail(fmt.Errorf("%w: unknown config action %q (want path, show or init)", fspath.ErrInvalidArgument, action))
	}
	return 0
}

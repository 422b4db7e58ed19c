package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/dlg/codec"
	"github.com/matzehuels/dlgraph/pkg/errors"
	"github.com/matzehuels/dlgraph/pkg/gff"
	"github.com/matzehuels/dlgraph/pkg/twine"
)

// appName is the application name used for config lookup and display.
const appName = "dlgraph"

// Input/output format names accepted by --from / --to flags.
const (
	formatAuto      = "auto"
	formatGFF       = "gff"
	formatTwineJSON = "twine-json"
	formatTwineHTML = "twine-html"
)

// parseGame maps a config/flag value to a game variant.
func parseGame(s string) (dlg.Game, error) {
	switch s {
	case "k1", "K1", "1":
		return dlg.GameK1, nil
	case "", "k2", "K2", "2":
		return dlg.GameK2, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidValue, "unknown game %q (want k1 or k2)", s)
	}
}

// loadDialog reads a dialogue graph from path. With from == "auto" the
// format is sniffed: leading '<' means a Twine HTML archive; for JSON, a
// top-level "fields" key means the container form and anything else is
// treated as a Twine story.
func loadDialog(ctx context.Context, path, from string) (*dlg.Dialog, error) {
	logger := loggerFromContext(ctx)

	if from == formatAuto {
		sniffed, err := sniffInput(path)
		if err != nil {
			return nil, err
		}
		from = sniffed
		logger.Debug("sniffed input format", "path", path, "format", from)
	}

	switch from {
	case formatGFF:
		root, err := gff.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return codec.Construct(root, logger), nil
	case formatTwineJSON, formatTwineHTML, "twine":
		return twine.Read(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidValue, "unknown input format %q", from)
	}
}

// sniffInput decides between the container form and a Twine story without
// fully parsing either.
func sniffInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return "", errors.New(errors.ErrCodeInvalidFormat, "%s: empty file", path)
	}
	switch trimmed[0] {
	case '<':
		return formatTwineHTML, nil
	case '{':
		var probe struct {
			Fields json.RawMessage `json:"fields"`
		}
		if err := json.Unmarshal(trimmed, &probe); err == nil && probe.Fields != nil {
			return formatGFF, nil
		}
		return formatTwineJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"%s: content is neither JSON nor HTML", path)
	}
}

// saveDialog writes a dialogue graph to path in the requested format.
func saveDialog(d *dlg.Dialog, path, to string, game dlg.Game, useDeprecated bool, meta twine.Metadata) error {
	switch to {
	case formatGFF:
		return gff.WriteFile(codec.Dismantle(d, game, useDeprecated), path)
	case formatTwineJSON:
		return twine.Write(d, path, twine.FormatJSON, meta)
	case formatTwineHTML:
		return twine.Write(d, path, twine.FormatHTML, meta)
	default:
		return errors.New(errors.ErrCodeInvalidValue, "unknown output format %q", to)
	}
}

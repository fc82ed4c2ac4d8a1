// Package fileblock reconciles marker-delimited blocks in text files. The
// probe is a verbatim substring match on the begin marker; the apply is
// append-only and never duplicates a block.
package fileblock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/model"
	"github.com/alexisbeaulieu97/rigup/pkg/diff"
)

type fileBlockHandler struct{}

// New creates the file block handler.
func New() handler.Handler {
	return &fileBlockHandler{}
}

var _ handler.Handler = (*fileBlockHandler)(nil)

func (h *fileBlockHandler) Metadata() handler.Metadata {
	return handler.Metadata{
		Kind:        config.KindFileBlock,
		Description: "Ensures a marker-delimited block exists in a text file.",
	}
}

func (h *fileBlockHandler) Schema() any {
	return config.FileBlockDecl{}
}

// BeginMarker returns the opening marker line for a marker id. The probe
// matches this exact string; changing its shape orphans blocks written by
// earlier releases.
func BeginMarker(marker string) string {
	return fmt.Sprintf("# >>> rigup: %s >>>", marker)
}

// EndMarker returns the closing marker line for a marker id.
func EndMarker(marker string) string {
	return fmt.Sprintf("# <<< rigup: %s <<<", marker)
}

func renderBlock(marker, content string) string {
	return BeginMarker(marker) + "\n" + strings.TrimRight(content, "\n") + "\n" + EndMarker(marker) + "\n"
}

func (h *fileBlockHandler) Probe(ctx context.Context, decl *config.Declaration, _ handler.RunView) (*model.ProbeResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, handler.NewStateError(decl.ID, err)
	}

	state, err := readFileState(cfg.Path)
	if err != nil {
		return nil, handler.NewStateError(decl.ID, err)
	}

	present := strings.Contains(state.Content, BeginMarker(cfg.Marker))
	message := fmt.Sprintf("marker %q missing from %s", cfg.Marker, state.Path)
	if present {
		message = fmt.Sprintf("marker %q present in %s", cfg.Marker, state.Path)
	}

	result := &model.ProbeResult{
		ID:           decl.ID,
		Present:      present,
		Message:      message,
		CheckedAt:    time.Now(),
		InternalData: state,
	}
	if !present {
		result.ProposedValue = diff.Preview(state.Content, appended(state.Content, renderBlock(cfg.Marker, cfg.Content)))
	}
	return result, nil
}

func (h *fileBlockHandler) Apply(ctx context.Context, _ *model.ProbeResult, decl *config.Declaration, _ handler.RunView) (*model.ApplyResult, error) {
	cfg, err := payload(decl)
	if err != nil {
		return nil, handler.NewValidationError(decl.ID, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, handler.NewExecutionError(decl.ID, err)
	}

	// Re-read rather than trusting probe data: an interrupted earlier run
	// may have left the file half-written, and the no-duplicate guarantee
	// depends on the freshest content.
	state, err := readFileState(cfg.Path)
	if err != nil {
		return nil, handler.NewExecutionError(decl.ID, err)
	}

	if strings.Contains(state.Content, BeginMarker(cfg.Marker)) {
		return &model.ApplyResult{Message: fmt.Sprintf("marker %q already present", cfg.Marker)}, nil
	}

	updated := appended(state.Content, renderBlock(cfg.Marker, cfg.Content))
	if err := writeFileAtomic(state.Path, []byte(updated), state.Permissions); err != nil {
		return nil, handler.NewExecutionError(decl.ID, fmt.Errorf("failed to write %s: %w", state.Path, err))
	}

	return &model.ApplyResult{Message: fmt.Sprintf("appended block %q to %s", cfg.Marker, state.Path)}, nil
}

// appended joins existing content and a block, keeping exactly one newline
// between them.
func appended(content, block string) string {
	if content == "" {
		return block
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + block
}

func payload(decl *config.Declaration) (*config.FileBlockDecl, error) {
	if decl == nil || decl.FileBlock == nil {
		return nil, fmt.Errorf("file_block configuration missing")
	}
	return decl.FileBlock, nil
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/spf13/cobra"
)

// EnvelopeError is returned by a command whose envelope reported failure.
type EnvelopeError struct {
	Body *app.ErrorBody
}

func (e *EnvelopeError) Error() string {
	if e.Body == nil {
		return "command failed"
	}
	return fmt.Sprintf("%s: %s", e.Body.Kind, e.Body.Message)
}

func (e *EnvelopeError) Kind() domain.ErrorKind {
	if e.Body == nil {
		return domain.KindInternal
	}
	return e.Body.Kind
}

// emit prints env and turns a failed envelope into an error. With --json the
// envelope is printed verbatim whether or not it succeeded.
func emit[T any](cmd *cobra.Command, r *runner, env app.Envelope[T], pretty func(T) string) error {
	out := cmd.OutOrStdout()

	if r.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else if env.Success {
		if env.Message != "" {
			fmt.Fprintln(out, formatter.StyleGreen.Render("✔ "+env.Message))
		}
		if pretty != nil {
			fmt.Fprint(out, pretty(env.Data))
		}
	}

	if !env.Success {
		return &EnvelopeError{Body: env.Error}
	}
	return nil
}

// reject reports an input error raised before the façade was called, in the
// same shape as a failed envelope.
func reject(cmd *cobra.Command, r *runner, err error) error {
	env := app.Envelope[any]{Error: &app.ErrorBody{
		Kind:    domain.KindOf(err),
		Message: err.Error(),
		Fields:  domain.FieldsOf(err),
	}}
	return emit(cmd, r, env, nil)
}

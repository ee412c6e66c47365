package journey

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// StepSpec is one step of a declarative journey file: an optional
// navigation/click/wait action, followed by the named captures to run.
type StepSpec struct {
	Name    string   `json:"name"`
	Goto    string   `json:"goto,omitempty"`
	Click   string   `json:"click,omitempty"`
	WaitFor string   `json:"wait_for,omitempty"`
	Capture []string `json:"capture,omitempty"`
}

// DefinitionSpec is the on-disk shape of a journey authored as data
// rather than Go code — the CLI's concrete realization of the
// journey-definition interface (§6) for users who don't want to write
// Go.
type DefinitionSpec struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	BaseURL     string     `json:"base_url"`
	Steps       []StepSpec `json:"steps"`
}

// LoadDefinition reads a declarative journey file and compiles it into
// a runnable Definition.
func LoadDefinition(path string) (DefinitionSpec, Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefinitionSpec{}, Definition{}, werr.Wrap(werr.CodeFileNotFound, "journey file not found: "+path, err)
		}
		return DefinitionSpec{}, Definition{}, werr.Wrap(werr.CodeLoadFailed, "read journey file: "+path, err)
	}

	var spec DefinitionSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return DefinitionSpec{}, Definition{}, werr.Wrap(werr.CodeInvalidJSON, "journey file is not valid JSON: "+path, err)
	}
	if spec.Name == "" || spec.BaseURL == "" || len(spec.Steps) == 0 {
		return DefinitionSpec{}, Definition{}, werr.New(werr.CodeUnknownFormat, "journey file requires name, base_url, and at least one step")
	}

	return spec, spec.compile(), nil
}

func (spec DefinitionSpec) compile() Definition {
	return Definition{
		Name:        spec.Name,
		Description: spec.Description,
		Run: func(jctx *Context) error {
			for _, step := range spec.Steps {
				step := step
				if err := jctx.Step(step.Name, step.run); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (step StepSpec) run(ctx context.Context, page browser.Tab, capture *CaptureScope) error {
	if step.Goto != "" {
		if err := page.Goto(ctx, step.Goto, browser.WaitNetworkIdle); err != nil {
			return err
		}
	}
	if step.Click != "" {
		capture.StartInteraction(step.Name)
		if err := page.Click(ctx, step.Click); err != nil {
			return err
		}
	}
	if step.WaitFor != "" {
		if err := page.WaitForSelector(ctx, step.WaitFor, 10*time.Second); err != nil {
			return err
		}
	}
	if step.Click != "" {
		capture.EndInteraction()
	}

	for _, c := range step.Capture {
		var err error
		switch c {
		case "cwv":
			err = capture.CWV()
		case "resources":
			err = capture.Resources()
		case "navigation":
			err = capture.Navigation()
		case "memory":
			err = capture.Memory()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

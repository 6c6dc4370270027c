package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// ErrNonInteractive is returned when a prompt is needed but prompting is disabled
var ErrNonInteractive = errors.New("interactive prompt not available in non-interactive mode")

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork lets the operator pick a network from a list
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []string, prompt string) (string, error) {
	if s.config.NonInteractive {
		return "", ErrNonInteractive
	}
	if len(networks) == 0 {
		return "", fmt.Errorf("no networks provided for selection")
	}
	if len(networks) == 1 {
		return networks[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             networks,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(networks),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return networks[index], nil
}

// Confirm asks a yes/no question. AssumeYes answers it without prompting.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.AssumeYes {
		return true, nil
	}
	if s.config.NonInteractive {
		return false, ErrNonInteractive
	}

	p := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.NetworkSelector = (*SelectorAdapter)(nil)
	_ usecase.Confirmer       = (*SelectorAdapter)(nil)
)

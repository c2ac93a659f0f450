package application

import (
	"fmt"
	"strconv"

	"github.com/bnema/keytrack/internal/domain"
	"github.com/bnema/keytrack/internal/ports"
)

const (
	buttonMin = 1
	buttonMax = 9
)

// Config keys for the shifted project bank continue after the base
// keypad numbering ("1".."9"), matching the label file layout.
const shiftedBankOffset = 9

var defaultLabels = map[string]string{
	"2":  "General",
	"3":  "Meetings",
	"4":  "Project 1",
	"5":  "Project 2",
	"6":  "Project 3",
	"7":  "Support",
	"12": "Project 4",
	"13": "Project 5",
	"14": "Project 6",
	"15": "Project 7",
	"16": "Project 8",
}

var projectColors = map[int]domain.Color{
	3: {G: 255},
	4: {B: 255, G: 128},
	5: {R: 255, B: 255},
	6: {R: 255, G: 128},
	7: {R: 255, G: 64},
}

// KeyMap is the fixed table resolving a (layer, button) pair to an
// action. It is built once at startup; resolution is pure.
type KeyMap struct {
	actions [2][buttonMax + 1]domain.Action
}

func NewKeyMap(labels ports.LabelSource) *KeyMap {
	k := &KeyMap{}

	for _, layer := range []domain.Layer{domain.LayerBase, domain.LayerShifted} {
		row := &k.actions[layer]
		row[1] = domain.Action{Kind: domain.ActionToggleSleep}
		row[2] = domain.Action{Kind: domain.ActionToggleDefault, Label: resolveLabel(labels, "2")}
		for button := 3; button <= 7; button++ {
			row[button] = projectAction(labels, layer, button)
		}
		row[8] = domain.Action{Kind: domain.ActionShowSummary}
		row[9] = domain.Action{Kind: domain.ActionShiftLayer}
	}

	return k
}

// Resolve maps a button index on the given layer to its action.
// Indices outside the physical surface fail with ErrUnknownButton.
func (k *KeyMap) Resolve(layer domain.Layer, button int) (domain.Action, error) {
	if button < buttonMin || button > buttonMax {
		return domain.Action{}, fmt.Errorf("button %d: %w", button, domain.ErrUnknownButton)
	}

	return k.actions[layer][button], nil
}

func projectAction(labels ports.LabelSource, layer domain.Layer, button int) domain.Action {
	key := strconv.Itoa(button)
	if layer == domain.LayerShifted {
		key = strconv.Itoa(button + shiftedBankOffset)
	}

	return domain.Action{
		Kind:  domain.ActionStartSession,
		Label: resolveLabel(labels, key),
		Color: projectColors[button],
		LED:   projectLED(button),
	}
}

// projectLED mirrors the original firmware convention: each project
// button lights the LED one position below it.
func projectLED(button int) int {
	led := button - 1
	if led < 1 {
		led = 1
	}
	if led > 7 {
		led = 7
	}
	return led
}

func resolveLabel(labels ports.LabelSource, key string) string {
	if labels != nil {
		if label, ok := labels.Label(key); ok {
			return label
		}
	}
	return defaultLabels[key]
}

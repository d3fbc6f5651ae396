package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCustomizationValidate(t *testing.T) {
	cases := []struct {
		name string
		c    Customization
		ok   bool
	}{
		{"empty kind", Customization{}, true},
		{"none", Customization{Kind: CustomizationNone}, true},
		{"none with payload", Customization{Kind: CustomizationNone, Text: &TextOverlay{Text: "hi"}}, false},
		{"text", Customization{Kind: CustomizationText, Text: &TextOverlay{Text: "hi"}}, true},
		{"text missing payload", Customization{Kind: CustomizationText}, false},
		{"text empty string", Customization{Kind: CustomizationText, Text: &TextOverlay{}}, false},
		{"text with image payload", Customization{Kind: CustomizationText, Text: &TextOverlay{Text: "hi"}, Image: &ImageOverlay{DesignID: uuid.New()}}, false},
		{"image", Customization{Kind: CustomizationImage, Image: &ImageOverlay{DesignID: uuid.New()}}, true},
		{"image missing payload", Customization{Kind: CustomizationImage}, false},
		{"unknown kind", Customization{Kind: "sticker"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidCustomization)
			}
		})
	}
}

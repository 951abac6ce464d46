package domain

import (
	"time"

	"shoeshop/pkg/validation"
)

type SizeStock struct {
	Size  float64 `json:"size" validate:"gt=0,lte=60"`
	Stock int     `json:"stock" validate:"gte=0"`
}

type Variant struct {
	Color    string      `json:"color" validate:"required,max=50"`
	ImageURL string      `json:"image_url" validate:"omitempty,url"`
	Sizes    []SizeStock `json:"sizes" validate:"required,min=1,dive"`
}

type Shoe struct {
	ID          string    `json:"id"`
	Brand       string    `json:"brand" validate:"required,max=100"`
	Model       string    `json:"model" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=2000"`
	Category    string    `json:"category" validate:"max=50"`
	Price       float64   `json:"price" validate:"gt=0"`
	Variants    []Variant `json:"variants" validate:"required,min=1,dive"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Shoe) Validate() error {
	if err := validation.Struct(s); err != nil {
		return validationError(err)
	}
	colors := make(map[string]struct{}, len(s.Variants))
	for _, v := range s.Variants {
		if _, dup := colors[v.Color]; dup {
			return ValidationErrorf("duplicate variant color %q", v.Color)
		}
		colors[v.Color] = struct{}{}

		sizes := make(map[float64]struct{}, len(v.Sizes))
		for _, sz := range v.Sizes {
			if _, dup := sizes[sz.Size]; dup {
				return ValidationErrorf("duplicate size %v for color %q", sz.Size, v.Color)
			}
			sizes[sz.Size] = struct{}{}
		}
	}
	return nil
}

// Stock returns a pointer into the variant slice so callers can adjust it in place.
func (s *Shoe) Stock(color string, size float64) (*SizeStock, bool) {
	for i := range s.Variants {
		if s.Variants[i].Color != color {
			continue
		}
		for j := range s.Variants[i].Sizes {
			if s.Variants[i].Sizes[j].Size == size {
				return &s.Variants[i].Sizes[j], true
			}
		}
	}
	return nil, false
}

// AddStock puts qty pairs into the given variant size, creating the colour or size when the shoe lacks it.
func (s *Shoe) AddStock(color string, size float64, qty int) {
	if st, ok := s.Stock(color, size); ok {
		st.Stock += qty
		return
	}
	for i := range s.Variants {
		if s.Variants[i].Color == color {
			s.Variants[i].Sizes = append(s.Variants[i].Sizes, SizeStock{Size: size, Stock: qty})
			return
		}
	}
	s.Variants = append(s.Variants, Variant{Color: color, Sizes: []SizeStock{{Size: size, Stock: qty}}})
}

// ShoeFilter narrows ListShoes. Empty fields match everything.
type ShoeFilter struct {
	Brand    string
	Category string
}

package reaction

import (
	"strings"

	"github.com/pkg/errors"
)

// Category is one of the three fixed reactions.
type Category string

// These are the available reactions for a whisper
const (
	Heart  Category = "heart"
	Moon   Category = "moon"
	Flower Category = "flower"
)

// ErrInvalidCategory is returned for any tag outside the three categories.
var ErrInvalidCategory = errors.New("invalid reaction category")

// All lists the categories in display order.
func All() []Category {
	return []Category{Heart, Moon, Flower}
}

func Valid(c Category) bool {
	for _, p := range All() {
		if c == p {
			return true
		}
	}
	return false
}

// Parse checks a tag coming from outside. Matching is exact apart from
// surrounding whitespace.
func Parse(tag string) (c Category, err error) {
	c = Category(strings.TrimSpace(tag))
	if !Valid(c) {
		return "", errors.Wrapf(ErrInvalidCategory, "'%s'", tag)
	}
	return
}

// Counts holds one counter per category. A record stored without counts
// decodes to all zeros.
type Counts struct {
	Heart  int64 `json:"heart"`
	Moon   int64 `json:"moon"`
	Flower int64 `json:"flower"`
}

// Increment adds one to the counter of c.
func (rc *Counts) Increment(c Category) error {
	switch c {
	case Heart:
		rc.Heart++
	case Moon:
		rc.Moon++
	case Flower:
		rc.Flower++
	default:
		return errors.Wrapf(ErrInvalidCategory, "'%s'", c)
	}
	return nil
}

// Get returns the counter of c, zero for anything else.
func (rc Counts) Get(c Category) int64 {
	switch c {
	case Heart:
		return rc.Heart
	case Moon:
		return rc.Moon
	case Flower:
		return rc.Flower
	}
	return 0
}

func (rc Counts) Total() int64 {
	return rc.Heart + rc.Moon + rc.Flower
}

package roster

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classbook/core"
)

type Student struct {
	ID     string `json:"id"`
	Number string `json:"num"`
	Name   string `json:"name"`
	Memo   string `json:"memo"`
}

// NumericNumber returns the integer value of Number. ok is false for non-numeric numbers,
// which sort after every numeric one.
func (s Student) NumericNumber() (n int, ok bool) {
	return parseNumber(s.Number)
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Number string `json:"num" validate:"notblank,studentnum"`
	Name   string `json:"name" validate:"notblank"`
	Memo   string `json:"memo"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Number = core.CleanString(ns.Number)
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Every field is replaced.
type UpdateStudent NewStudent

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Number = core.CleanString(us.Number)
	us.Name = core.CleanString(us.Name)
	return validate.Struct(us)
}

func parseNumber(number string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextNumber is the continuous-add projection: the number to pre-fill after `number` was saved.
// ok is false when number is not numeric or has no successor.
func NextNumber(number string) (next string, ok bool) {
	n, ok := parseNumber(number)
	if !ok || n == math.MaxInt {
		return "", false
	}
	return strconv.Itoa(n + 1), true
}

func seed() []Student {
	return []Student{
		{ID: "1", Number: "01", Name: "김학생", Memo: "메모 없음"},
		{ID: "2", Number: "02", Name: "이학생", Memo: "메모 없음"},
		{ID: "3", Number: "03", Name: "박학생", Memo: "메모 없음"},
	}
}

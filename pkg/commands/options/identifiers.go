package options

import (
	"errors"
	"strings"

	"github.com/kraitsura/teal/pkg/model"
)

// ParseID reads a task number. Breadcrumbs such as "1.2.4" name their last
// segment.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return model.ParseID(s)
}

// ParseIDs reads task numbers given as separate arguments, comma separated,
// or both.
func ParseIDs(args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, field := range strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			id, err := ParseID(field)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, errors.New("requires at least one task number")
	}
	return ids, nil
}

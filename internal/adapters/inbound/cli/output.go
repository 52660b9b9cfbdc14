package cli

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/abdidvp/flooring/internal/domain"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseOrderNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, &domain.ValidationError{Field: "order number", Reason: "\"" + s + "\" is not a positive integer"}
	}
	return n, nil
}

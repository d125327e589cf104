package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/packlane/storefront/pkg/enums"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

func ParsePathInt(raw, name string, min, max int) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be numeric").WithDetails(map[string]any{"field": name})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter out of range").WithDetails(map[string]any{"field": name, "min": min, "max": max})
	}
	return value, nil
}

func ParseQuerySortKey(r *http.Request, key string) (enums.SortKey, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return enums.SortByName, nil
	}
	sortKey, err := enums.ParseSortKey(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown sort key").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return sortKey, nil
}

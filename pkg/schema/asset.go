package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Asset table column names.
const (
	ColDate               = "DATE"
	ColAccount            = "ACCOUNT"
	ColName               = "NAME"
	ColNetWorth           = "NET_WORTH"
	ColMonthInvestigation = "MONTH_INVESTIGATION"
	ColMonthProfit        = "MONTH_PROFIT"
)

var assetColumns = []ColumnDef{
	NewColumnDef(ColDate, TypeText, NotNull),
	NewColumnDef(ColAccount, TypeText, NotNull),
	NewColumnDef(ColName, TypeText, NotNull),
	NewColumnDef(ColNetWorth, TypeReal, NotNull),
	NewColumnDef(ColMonthInvestigation, TypeReal, NotNull),
	NewColumnDef(ColMonthProfit, TypeReal, NotNull),
}

// AssetTable is the asset snapshot table.
var AssetTable = MustTableDef("ASSET", assetColumns, nil)

// AssetTableWith returns the asset table extended with optional columns.
func AssetTableWith(extension ...ColumnDef) (*TableDef, error) {
	return NewTableDef(AssetTable.Name(), AssetTable.EssentialColumns(), extension)
}

// AssetRow is one dated snapshot of an asset.
// (Account, Name, Date) is its natural identity.
type AssetRow struct {
	Date               string  `csv:"DATE"`
	Account            string  `csv:"ACCOUNT"`
	Name               string  `csv:"NAME"`
	NetWorth           float64 `csv:"NET_WORTH"`
	MonthInvestigation float64 `csv:"MONTH_INVESTIGATION"`
	MonthProfit        float64 `csv:"MONTH_PROFIT"`

	// Extensions holds values for extension columns, keyed by column name.
	Extensions map[string]any `csv:"-"`
}

// ParseAssetRow builds a row from a loose record keyed by column name.
// Every essential column of t must be present. Extension columns are
// picked up when present; other keys are ignored.
func ParseAssetRow(t *TableDef, rec map[string]any) (AssetRow, error) {
	var row AssetRow

	for _, col := range t.EssentialColumns() {
		raw, ok := rec[col.Name]
		if !ok {
			return AssetRow{}, fmt.Errorf("%w: %s", ErrMissingColumn, col.Name)
		}
		v, err := BindValue(col, raw)
		if err != nil {
			return AssetRow{}, err
		}
		if err := row.Set(col.Name, v); err != nil {
			return AssetRow{}, err
		}
	}

	for _, col := range t.ExtensionColumns() {
		raw, ok := rec[col.Name]
		if !ok || raw == nil {
			continue
		}
		v, err := BindValue(col, raw)
		if err != nil {
			return AssetRow{}, err
		}
		row.SetExtension(col.Name, v)
	}

	return row, nil
}

// SetExtension stores a value for an extension column.
func (r *AssetRow) SetExtension(name string, value any) {
	if r.Extensions == nil {
		r.Extensions = make(map[string]any)
	}
	r.Extensions[name] = value
}

// Get returns the value stored for a column name.
func (r AssetRow) Get(name string) (any, bool) {
	switch name {
	case ColDate:
		return r.Date, true
	case ColAccount:
		return r.Account, true
	case ColName:
		return r.Name, true
	case ColNetWorth:
		return r.NetWorth, true
	case ColMonthInvestigation:
		return r.MonthInvestigation, true
	case ColMonthProfit:
		return r.MonthProfit, true
	}
	v, ok := r.Extensions[name]
	return v, ok
}

// Bindings returns the column names and values to insert for this row:
// all essential columns of t, then each extension column the row carries.
func (r AssetRow) Bindings(t *TableDef) ([]string, []any, error) {
	var names []string
	var values []any

	for _, col := range t.EssentialColumns() {
		v, ok := r.Get(col.Name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, col.Name)
		}
		names = append(names, col.Name)
		values = append(values, v)
	}

	for _, col := range t.ExtensionColumns() {
		v, ok := r.Extensions[col.Name]
		if !ok {
			continue
		}
		bound, err := BindValue(col, v)
		if err != nil {
			return nil, nil, err
		}
		names = append(names, col.Name)
		values = append(values, bound)
	}

	return names, values, nil
}

// Set assigns a scanned value to the field for a column name.
// Unknown names are kept as extensions.
func (r *AssetRow) Set(name string, value any) error {
	switch name {
	case ColDate, ColAccount, ColName:
		s, err := toText(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		switch name {
		case ColDate:
			r.Date = s
		case ColAccount:
			r.Account = s
		default:
			r.Name = s
		}
	case ColNetWorth, ColMonthInvestigation, ColMonthProfit:
		f, err := toReal(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		switch name {
		case ColNetWorth:
			r.NetWorth = f
		case ColMonthInvestigation:
			r.MonthInvestigation = f
		default:
			r.MonthProfit = f
		}
	default:
		r.SetExtension(name, value)
	}
	return nil
}

// BindValue converts v to the Go type bound for the column's declared type:
// string for TEXT, float64 for REAL and int64 for INTEGER.
func BindValue(col ColumnDef, v any) (any, error) {
	var (
		out any
		err error
	)
	switch col.Type {
	case TypeText:
		out, err = toText(v)
	case TypeReal:
		out, err = toReal(v)
	case TypeInteger:
		out, err = toInteger(v)
	default:
		return v, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", col.Name, err)
	}
	return out, nil
}

func toText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	}
	return "", fmt.Errorf("%w: %v (%T) is not text", ErrInvalidValue, v, v)
}

func toReal(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, x)
		}
		return f, nil
	case []byte:
		return toReal(string(x))
	}
	return 0, fmt.Errorf("%w: %v (%T) is not a number", ErrInvalidValue, v, v)
}

func toInteger(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case float64:
		if x != float64(int64(x)) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, x)
		}
		return int64(x), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, x)
		}
		return n, nil
	case []byte:
		return toInteger(string(x))
	}
	return 0, fmt.Errorf("%w: %v (%T) is not an integer", ErrInvalidValue, v, v)
}

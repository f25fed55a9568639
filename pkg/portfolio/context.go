package portfolio

import (
	"fmt"
	"sort"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

// Source is the part of the store a Context reads from.
type Source interface {
	QueryColumns(columns ...string) ([][]any, error)
	QueryAsset(account, name string) ([]schema.AssetRow, error)
}

// Context is the account tree of one session. It is loaded once and
// passed explicitly to whatever renders or edits it.
type Context struct {
	src      Source
	accounts map[string]*Account
	order    []string
}

// NewContext returns an empty context reading from src.
func NewContext(src Source) *Context {
	return &Context{
		src:      src,
		accounts: make(map[string]*Account),
	}
}

// LoadContext builds the account tree from the distinct account and asset
// names in src, in the order they first appear.
func LoadContext(src Source) (*Context, error) {
	c := NewContext(src)

	pairs, err := src.QueryColumns(schema.ColAccount, schema.ColName)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	for _, pair := range pairs {
		accName, ok1 := pair[0].(string)
		assetName, ok2 := pair[1].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("failed to load accounts: unexpected row %v", pair)
		}

		acc := c.AddAccount(accName)
		if _, ok := acc.Asset(assetName); !ok {
			acc.NewAsset(assetName)
		}
	}

	return c, nil
}

// AddAccount returns the account named name, creating it if needed.
func (c *Context) AddAccount(name string) *Account {
	if acc, ok := c.accounts[name]; ok {
		return acc
	}
	acc := NewAccount(name)
	c.accounts[name] = acc
	c.order = append(c.order, name)
	return acc
}

// Account returns the account named name.
func (c *Context) Account(name string) (*Account, bool) {
	acc, ok := c.accounts[name]
	return acc, ok
}

// Accounts returns the accounts in load order.
func (c *Context) Accounts() []*Account {
	accounts := make([]*Account, len(c.order))
	for i, name := range c.order {
		accounts[i] = c.accounts[name]
	}
	return accounts
}

// AccountNames returns the account names in load order.
func (c *Context) AccountNames() []string {
	return append([]string(nil), c.order...)
}

// AssetRows returns the snapshots of one asset, newest first.
func (c *Context) AssetRows(account, name string) ([]schema.AssetRow, error) {
	rows, err := c.src.QueryAsset(account, name)
	if err != nil {
		return nil, err
	}
	SortByDateDesc(rows)
	return rows, nil
}

// ApplyCategories attaches category metadata to the matching assets,
// creating accounts and assets the store does not know about yet.
func (c *Context) ApplyCategories(cfg *CategoryConfig) error {
	if cfg == nil {
		return nil
	}
	for _, accCfg := range cfg.Accounts {
		acc := c.AddAccount(accCfg.Name)
		for _, assetCfg := range accCfg.Assets {
			asset, ok := acc.Asset(assetCfg.Name)
			if !ok {
				asset = acc.NewAsset(assetCfg.Name)
			}
			for _, cat := range assetCfg.Categories {
				if err := asset.AddCategory(cat.Label, cat.Type); err != nil {
					return fmt.Errorf("failed to apply categories: %w", err)
				}
			}
		}
	}
	return nil
}

// SortByDateDesc orders rows newest first. Dates are ISO strings.
func SortByDateDesc(rows []schema.AssetRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})
}

// Package portfolio holds the in-memory Account and AssetItem tree built
// from stored snapshots.
package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Frame column names shared by every asset row.
const (
	FrameAccount = "Account"
	FrameName    = "Name"
)

// ErrReservedLabel is returned for a category label that would collide
// with a frame column.
var ErrReservedLabel = errors.New("reserved category label")

// AssetItem is a named asset inside an Account.
// Its categories describe optional extension data and are not persisted.
type AssetItem struct {
	Name string

	account    *Account
	categories map[string]string
	order      []string
}

// AssetJSON is the metadata view of an AssetItem.
type AssetJSON struct {
	Name     string            `json:"Name"`
	Account  string            `json:"Account"`
	Category map[string]string `json:"Category"`
}

// NewAssetItem creates an asset belonging to acc. It is not added to acc;
// use Account.AddAsset or Account.NewAsset for that.
func NewAssetItem(name string, acc *Account) *AssetItem {
	return &AssetItem{
		Name:       name,
		account:    acc,
		categories: make(map[string]string),
	}
}

// Account returns the account the asset belongs to.
func (a *AssetItem) Account() *Account {
	return a.account
}

// AccountName returns the owning account's name, or "" when detached.
func (a *AssetItem) AccountName() string {
	if a.account == nil {
		return ""
	}
	return a.account.Name
}

// AddCategory sets the value type of a category label.
// A new label is appended; an existing one keeps its position.
// Account and Name are reserved for the frame columns.
func (a *AssetItem) AddCategory(label, typ string) error {
	if label == FrameAccount || label == FrameName {
		return fmt.Errorf("%w: %s on asset %s", ErrReservedLabel, label, a.Name)
	}
	if _, ok := a.categories[label]; !ok {
		a.order = append(a.order, label)
	}
	a.categories[label] = typ
	return nil
}

// Category returns the type of a category label.
func (a *AssetItem) Category(label string) (string, bool) {
	t, ok := a.categories[label]
	return t, ok
}

// CategoryLabels returns the labels in insertion order.
func (a *AssetItem) CategoryLabels() []string {
	return append([]string(nil), a.order...)
}

// ToJSON returns the metadata view of the asset.
func (a *AssetItem) ToJSON() AssetJSON {
	cats := make(map[string]string, len(a.categories))
	for k, v := range a.categories {
		cats[k] = v
	}
	return AssetJSON{
		Name:     a.Name,
		Account:  a.AccountName(),
		Category: cats,
	}
}

// MarshalJSON implements json.Marshaler.
func (a *AssetItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToJSON())
}

func (a *AssetItem) values() map[string]string {
	values := map[string]string{
		FrameAccount: a.AccountName(),
		FrameName:    a.Name,
	}
	for k, v := range a.categories {
		values[k] = v
	}
	return values
}

// ToFrame returns a one-row frame with columns Account, Name and the
// category labels.
func (a *AssetItem) ToFrame() *Frame {
	f := NewFrame(append([]string{FrameAccount, FrameName}, a.order...)...)
	f.AppendRecord(a.values())
	return f
}

// AddToFrame appends the asset as a row of f, following f's columns.
func (a *AssetItem) AddToFrame(f *Frame) {
	f.AppendRecord(a.values())
}

// Account groups assets under a name.
type Account struct {
	Name string

	assets []*AssetItem
}

// NewAccount creates an empty account.
func NewAccount(name string) *Account {
	return &Account{Name: name}
}

// AddAsset appends an asset. Insertion order is display order.
// An asset owned by another account is moved out of it first.
// Adding an asset the account already holds is a no-op.
func (acc *Account) AddAsset(asset *AssetItem) {
	if asset.account == acc && acc.holds(asset) {
		return
	}
	if prev := asset.account; prev != nil && prev != acc {
		prev.remove(asset)
	}
	asset.account = acc
	acc.assets = append(acc.assets, asset)
}

func (acc *Account) holds(asset *AssetItem) bool {
	for _, a := range acc.assets {
		if a == asset {
			return true
		}
	}
	return false
}

func (acc *Account) remove(asset *AssetItem) {
	for i, a := range acc.assets {
		if a == asset {
			acc.assets = append(acc.assets[:i], acc.assets[i+1:]...)
			return
		}
	}
}

// NewAsset creates an asset, adds it and returns it.
func (acc *Account) NewAsset(name string) *AssetItem {
	asset := NewAssetItem(name, acc)
	acc.AddAsset(asset)
	return asset
}

// Assets returns the assets in display order.
func (acc *Account) Assets() []*AssetItem {
	return append([]*AssetItem(nil), acc.assets...)
}

// AssetNames returns the asset names in display order.
func (acc *Account) AssetNames() []string {
	names := make([]string, len(acc.assets))
	for i, a := range acc.assets {
		names[i] = a.Name
	}
	return names
}

// Asset returns the first asset named name.
func (acc *Account) Asset(name string) (*AssetItem, bool) {
	for _, a := range acc.assets {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// ToJSON returns the metadata view of the account.
func (acc *Account) ToJSON() map[string]string {
	return map[string]string{"Name": acc.Name}
}

// ToFrame concatenates the frames of all assets in order.
func (acc *Account) ToFrame() *Frame {
	f := NewFrame()
	for _, a := range acc.assets {
		f.Concat(a.ToFrame())
	}
	return f
}

// AddToFrame appends every asset as a row of f.
func (acc *Account) AddToFrame(f *Frame) {
	for _, a := range acc.assets {
		a.AddToFrame(f)
	}
}

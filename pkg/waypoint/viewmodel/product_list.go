package viewmodel

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/catalog"
)

// ErrNoProduct is returned when a selection does not match any listed product.
var ErrNoProduct = errors.New("no such product")

// ProductListDelegate receives the list screen's navigation events.
type ProductListDelegate interface {
	DidSelectProduct(vm *ProductList, p catalog.Product)
}

// ProductListRefresher is an optional delegate capability notified after Load.
type ProductListRefresher interface {
	DidRefreshProducts(vm *ProductList)
}

// ProductList backs the product list screen.
type ProductList struct {
	source   *catalog.Catalog
	texts    *Texts
	products []catalog.Product
	loading  bool
	err      error

	delegate  ProductListDelegate
	refresher ProductListRefresher
}

// NewProductList creates a list over source. Call Load to fill it.
func NewProductList(source *catalog.Catalog, texts *Texts) *ProductList {
	return &ProductList{source: source, texts: texts}
}

// SetDelegate sets the delegate. The delegate is not owned by the view-model.
func (vm *ProductList) SetDelegate(d ProductListDelegate) {
	vm.delegate = d
	vm.refresher, _ = d.(ProductListRefresher)
}

// Load refreshes the product list from the catalog.
func (vm *ProductList) Load() {
	vm.loading = true
	vm.products = vm.source.Products()
	vm.err = nil
	if len(vm.products) == 0 {
		vm.err = errors.New("catalog is empty")
	}
	vm.loading = false

	if vm.refresher != nil {
		vm.refresher.DidRefreshProducts(vm)
	}
}

// Title returns the localized screen title.
func (vm *ProductList) Title() string {
	return vm.texts.Title(MsgProductsTitle)
}

// Loading reports whether a load is in progress.
func (vm *ProductList) Loading() bool {
	return vm.loading
}

// Err returns the error of the last Load, if any.
func (vm *ProductList) Err() error {
	return vm.err
}

// Count returns the number of loaded products.
func (vm *ProductList) Count() int {
	return len(vm.products)
}

// ProductAt returns the product at row i.
func (vm *ProductList) ProductAt(i int) (catalog.Product, bool) {
	if i < 0 || i >= len(vm.products) {
		return catalog.Product{}, false
	}
	return vm.products[i], true
}

// Row returns the display line for the product at i.
func (vm *ProductList) Row(i int) string {
	p, ok := vm.ProductAt(i)
	if !ok {
		return ""
	}
	return p.Name + " · " + vm.texts.Price(p.Price)
}

// SelectIndex reports a tap on row i to the delegate.
func (vm *ProductList) SelectIndex(i int) error {
	p, ok := vm.ProductAt(i)
	if !ok {
		return fmt.Errorf("select index %d: %w", i, ErrNoProduct)
	}
	vm.selected(p)
	return nil
}

// SelectID reports a selection of product id to the delegate.
func (vm *ProductList) SelectID(id string) error {
	for _, p := range vm.products {
		if p.ID == id {
			vm.selected(p)
			return nil
		}
	}
	return fmt.Errorf("select id %q: %w", id, ErrNoProduct)
}

func (vm *ProductList) selected(p catalog.Product) {
	if vm.delegate != nil {
		vm.delegate.DidSelectProduct(vm, p)
	}
}

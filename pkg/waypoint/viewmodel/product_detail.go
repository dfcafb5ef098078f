package viewmodel

import "github.com/BrandonKowalski/waypoint/pkg/waypoint/catalog"

// Optional delegate capabilities of the detail screen.
type (
	ReviewsRequester interface {
		DidRequestReviews(vm *ProductDetail)
	}
	CartRequester interface {
		DidRequestAddToCart(vm *ProductDetail)
	}
	Dismisser interface {
		DidRequestDismiss(vm *ProductDetail)
	}
)

// ProductDetail backs the product detail screen.
type ProductDetail struct {
	product catalog.Product
	texts   *Texts

	reviews   ReviewsRequester
	cart      CartRequester
	dismisser Dismisser
}

// NewProductDetail creates the detail screen model for p.
func NewProductDetail(p catalog.Product, texts *Texts) *ProductDetail {
	return &ProductDetail{product: p, texts: texts}
}

// SetDelegate records whichever of the delegate capabilities d implements.
func (vm *ProductDetail) SetDelegate(d any) {
	vm.reviews, _ = d.(ReviewsRequester)
	vm.cart, _ = d.(CartRequester)
	vm.dismisser, _ = d.(Dismisser)
}

// Product returns the displayed product.
func (vm *ProductDetail) Product() catalog.Product { return vm.product }

// Title returns the screen title.
func (vm *ProductDetail) Title() string { return vm.product.Name }

func (vm *ProductDetail) Name() string { return vm.product.Name }

func (vm *ProductDetail) Description() string { return vm.product.Description }

// FormattedPrice returns the price in the current locale.
func (vm *ProductDetail) FormattedPrice() string {
	return vm.texts.Price(vm.product.Price)
}

// ReviewCountString returns the pluralized review count.
func (vm *ProductDetail) ReviewCountString() string {
	return vm.texts.ReviewCount(vm.product.ReviewCount)
}

// RatingString returns the rating, or a placeholder when there are no reviews.
func (vm *ProductDetail) RatingString() string {
	if vm.product.ReviewCount == 0 {
		return vm.texts.Title(MsgNoRatings)
	}
	return vm.texts.Rating(vm.product.Rating)
}

// ShowReviews asks the delegate to show reviews. It reports whether a delegate handled it.
func (vm *ProductDetail) ShowReviews() bool {
	if vm.reviews == nil {
		return false
	}
	vm.reviews.DidRequestReviews(vm)
	return true
}

// AddToCart asks the delegate to add the product to the cart.
func (vm *ProductDetail) AddToCart() bool {
	if vm.cart == nil {
		return false
	}
	vm.cart.DidRequestAddToCart(vm)
	return true
}

// Dismiss asks the delegate to close the screen.
func (vm *ProductDetail) Dismiss() bool {
	if vm.dismisser == nil {
		return false
	}
	vm.dismisser.DidRequestDismiss(vm)
	return true
}

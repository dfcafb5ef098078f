// Package nav provides the navigation context coordinators present screens through.
//
// A Controller keeps a stack of shown screens. Coordinators push, present and pop
// entries; the host UI layer registers a ScreenFunc per screen to draw it.
//
// # Basic Usage
//
//	c := nav.NewController()
//
//	c.Register(nav.ScreenProductDetail, func(input any) error {
//	    vm := input.(*viewmodel.ProductDetail)
//	    fmt.Println(vm.Name(), vm.FormattedPrice())
//	    return nil
//	})
//
//	c.Push(nav.ScreenProductList, listVM)
//	c.Push(nav.ScreenProductDetail, detailVM)
//	c.PopToDepth(1) // back to the list
//
// # Modal Screens
//
// Present pushes an entry flagged as modal. Dismiss only removes the top entry
// when it is modal, so it is safe to call before every new deep link.
package nav

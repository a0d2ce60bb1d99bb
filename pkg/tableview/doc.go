// Package tableview renders a datatable.Controller as HTML and drives it
// from the browser with Datastar.
//
// Components are templ components: Table (headers, rows, summary and
// pagination), Pager, ErrorMessage and Document for a full page. Handler
// exposes them over chi routes:
//
//	GET /              full page
//	GET /table         current table fragment (SSE)
//	GET /page/{page}   SetPage
//	GET /sort/{column} sort by column position, toggling on repeat
//	GET /search        Search with the "search" signal
//	GET /reload        clear the search, back to page 1
//
// SSE actions raise the "loading" signal while the controller works and
// patch either the refreshed table or an error message.
package tableview

// Package datatable implements the state machine behind a searchable,
// sortable, paginated data table.
//
// A Controller owns the dataset and a ViewState (current page, page size,
// sort key and direction, search term). It reads records from a Source and
// calls a RenderFunc with the visible page after every change. Rendering,
// loading indicators and error display are injected callbacks; see package
// tableview for HTML and SSE renderers.
//
// # Modes
//
// In ClientSide mode the whole dataset is fetched once and search, sort and
// pagination run locally. In ServerSide mode every page, search or sort
// change issues a new fetch and the server's total is authoritative.
//
//	client := apiclient.New("https://api.example.com")
//	table, err := datatable.New(
//		datatable.NewHTTPSource(client, "users"),
//		datatable.WithServerSide(),
//		datatable.WithRowsPerPage(10),
//		datatable.WithRenderer(func(rows []datatable.Record, s datatable.State) {
//			// project rows
//		}),
//		datatable.WithErrorReporter(func(err error) { showError(err.Error()) }),
//	)
//	if err != nil {
//		return err
//	}
//	_ = table.Load(ctx, 1, "")
//	_ = table.Sort(ctx, "name")
//	_ = table.SetPage(ctx, 3)
//	table.SearchDebounced(ctx, "doe")
//
// # Loads
//
// Starting a load cancels the previous one and bumps a generation counter;
// a result that arrives for an older generation is discarded and that load
// returns ErrCancelled. Failed loads are handed to the error reporter and
// never modify state. The loading callback is switched on at the start and
// off at the end of every load.
//
// # Sorting
//
// Sort is stable and preserves the current page. Values compare numerically,
// lexically, chronologically or false-before-true depending on their type.
package datatable

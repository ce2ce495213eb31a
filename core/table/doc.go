/*
Package table is the tabular data engine behind the admin list screens.

An Engine takes records and column descriptors and derives a searched,
sorted and paginated view of them. Every state change (search text, sort
toggle, page request, new records) re-runs Filter, Sort and Paginate in that
order.

Paging runs in one of two modes fixed at construction:

	Internal  the engine holds every record and slices pages itself
	External  the caller (usually a server query) owns the page; the engine
	          shows the rows it is given and relays page changes

Search, Sort and Paginate are also exported as pure functions.
*/
package table

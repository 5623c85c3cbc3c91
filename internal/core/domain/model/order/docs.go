// Package order contains the SourceOrder aggregate: an individual customer bill
// whose line items feed the consolidated packing pool.
//
// A source order carries its billing status (Normal, Review, ReInvoiced), the
// ordered list of line items exactly as fetched from the billing backend, and
// optional hold metadata when the order is parked awaiting sibling orders from
// the same customer.
package order

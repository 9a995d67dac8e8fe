// Package domain models coastal survey site-years and the survey point records
// that are enriched against them.
//
// # Site-Year Catalog
//
// A site-year is one survey campaign at one site, keyed by the site name
// followed by the year: "Cedar2010", "ParkerRiver2014". Each site-year has a
// short code used by field crews and file names ("cei10", "pr14"). The catalog
// is fixed reference data compiled into the binary; it is loaded once per
// process and never modified. See [Lookup], [LookupCode] and [Resolve].
//
// # Tidal Datums
//
// Elevations are in meters relative to the survey's vertical reference.
//
//	MHW  Mean High Water
//	MLW  Mean Low Water
//	MTL  Mean Tide Level (not published for any current site-year; null)
//
// When a mean-tide reference is needed and MTL is absent, the midpoint of MHW
// and MLW is used. See [SiteYear.MidTide].
//
// Tidal zone classification of a point at elevation z:
//
//	z >  MHW          supratidal
//	MLW <= z <= MHW   intertidal
//	z <  MLW          subtidal
//
// # Survey Records
//
// The upstream extractor publishes one flat JSON object per survey point to the
// Kafka source topic. A record names its site-year either by ID ("site_year")
// or by code ("code"); when both are present the ID wins.
//
//	{"site_year":"Cedar2010","transect":"T12","point":"4",
//	 "lat":"37.65","lon":"-75.61","elevation":"1.12",
//	 "surveyed_at":"2010-09-14"}
//
// # ID Generation
//
// Point IDs are deterministic SHA-256 hashes of ref|transect|point|lat|lon,
// prefixed with the site-year code when it resolves. A resolved ref is hashed
// as its catalog ID, so "Cedar2010" and "cei10" give the same point ID.
// Reprocessing the same record yields the same ID, so downstream upserts stay
// idempotent.
// See [generateID].
package domain

// Package report renders snapshots of the task collection for download: a
// paginated PDF summary and flat CSV or JSON exports.
package report

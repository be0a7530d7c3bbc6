// Package store persists review collections as JSON records.
//
// A record is written pretty-printed to a temporary file next to the target
// and renamed into place, so readers never observe a partial file. Records
// in the legacy rp_list layout are upgraded on load. Watcher reports
// debounced changes made to the record file by other processes.
package store

// Package sectionobserver tracks which page section is currently in view.
//
// A single Store is shared by every navigation widget on a page. Widgets
// subscribe through a Consumer; the first enabled consumer installs the
// observation machinery and the last one to leave tears it down again.
//
// Two signal sources feed the active section:
//
//   - one intersection watcher per section, reporting when the section
//     enters a narrow band below the fixed header;
//   - a passive scroll listener, coalesced to one geometric classification
//     per animation frame, which corrects what the watchers miss (fast
//     scrolls, very short sections).
//
// Both sources, along with programmatic overrides, are reduced by one
// function with last-event-wins semantics. Every install carries an epoch
// number and asynchronous callbacks created under an older epoch are
// dropped, so nothing mutates state after teardown.
//
// The browser is reached only through the Document and Scheduler
// interfaces. A Store built without a Document has no browsing context and
// every operation is a silent no-op.
package sectionobserver

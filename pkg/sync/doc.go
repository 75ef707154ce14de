/*
The sync package implements mdman's synchronization algorithm. It decides,
for every filesystem change, whether to propagate, warn, or retract tracking.

There are two kinds of tracked files:
1) Sources -- the files the user edits. Changes to a source are propagated
   to its destinations.
2) Destinations -- mirrored copies of a source. Destinations are never the
   source of truth: a direct edit to one is a desync, which is reported but
   never overwritten.

The central rule is that a destination is only overwritten when it was
faithfully tracking its source before the source changed. The Reconciler
keeps a snapshot of each source's last observed content; on a source edit,
destinations whose bytes match the old snapshot are updated to the new
content, and destinations that drifted keep their own content and are
reported. This way the watcher never silently clobbers a file the user
edited directly.

The Reconciler's own writes are re-observed as filesystem events. To avoid
mistaking those echoes for desyncs, each self-written destination is
remembered for a short window and events on it are suppressed inside that
window. The window is a heuristic trade-off between false suppression and
false alarms.
*/
package sync

// Package view holds the widget's interaction state and turns it into a
// description of the screen.
//
// State is owned by the controller and changed only through its transition
// methods. Reconcile combines a State with a card snapshot into a Tree, a
// plain value with no behaviour attached. Bind then derives the element id →
// Event map for that Tree. Keeping the two steps apart means a rebuild can
// never leave stale handlers behind: every Bind starts from an empty map.
//
// Reconcile clamps the list cursor, scroll offset and focus against what is
// actually on screen; Carry writes those values back into the State so they
// survive the next rebuild, including rebuilds triggered by a reload.
package view

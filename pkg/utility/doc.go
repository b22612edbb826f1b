/*
Package utility provides the scoring primitive shared by every decision layer in arbor.

A utility score is a relative desirability value obtained by weighting several
factors. Goal evaluators in pkg/hsm and the UtilitySelector leaf in pkg/bt both
reduce their inputs through Score, so a goal and an action scored from the same
factors always agree.

Scoring is pure and allocation free; it is safe to call every frame for every
candidate.
*/
package utility

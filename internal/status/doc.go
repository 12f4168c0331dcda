// Package status scores release upkeep from play and cleaning history.
//
// Cleanliness rises with plays logged since the last cleaning and saturates
// at 100; recency decays in steps as the last play ages. Both metrics share
// one five-band threshold table so labels and colors always agree. All
// functions are pure: callers pass the clock explicitly.
package status

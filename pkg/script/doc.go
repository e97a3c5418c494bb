// Package script defines the edit program produced by evaluating a facet
// script: an ordered list of editor operations. A Program is inert data;
// pkg/replay applies it to an editor.
package script

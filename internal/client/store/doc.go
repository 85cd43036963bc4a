// Package store holds the client-side state of the recipebook CLI.
//
// AuthStore tracks who is signed in. IngredientStore and RecipeStore cache
// the collections shown by the UI and reconcile them locally after each
// successful mutation instead of re-fetching. Session bundles the stores and
// the gateway client and is handed to the UI explicitly.
//
// Store methods never interpret error kinds and never retry. Every mutator
// returns the gateway Result so the caller can notify the user.
package store

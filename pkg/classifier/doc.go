// Package classifier assigns a single file to exactly one result bucket.
//
// Classification runs an ordered list of rules; the first rule whose
// predicate holds wins. Fall-through is expressed by ordering alone: a
// root-level PNG that is neither an app icon nor a launch image simply
// fails those two predicates and reaches the shared PNG/JPG rules below
// them. The final rule matches everything, so classification always
// yields a bucket.
//
// HTML files additionally go through the markup analyzer collaborator;
// the scripts it reports are returned alongside the classification so the
// caller can record them on its Result.
package classifier

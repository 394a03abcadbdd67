// Package language maps the language tags found in Matroska track headers to
// display names and flags whitelist entries that can never match them.
//
// mkvmerge reports ISO 639-2 bibliographic codes ("fre", "ger"), and the
// policy compares tags verbatim, so a whitelist written as "fr" or "fra"
// silently keeps nothing. Suggestions lets the CLI point that out.
package language

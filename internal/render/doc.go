// Package render produces the raw bytes of chaff files, one renderer per
// file kind.
//
// Renderers are deliberately plain: they only need to be openable by the
// native viewer for their format. Text kinds (txt, csv) are stretched or cut
// toward the planned size; binary kinds are not.
//
// Renderers that can mention other files implement ImageReferencer or
// AttachmentReferencer. AssignReferences feeds them names from the plan
// before Render is called.
package render

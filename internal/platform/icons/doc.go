// Package icons defines the icon identifiers used by template actions.
//
// The catalog maps stable icon identifiers to labels so that components can
// state intent without dictating presentation. Hosts render each id from
// their own Lucide sprite.
package icons

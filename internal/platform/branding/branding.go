// Package branding holds the product name shown in page titles.
package branding

// AppName is the product name.
const AppName = "TemplateDesk"

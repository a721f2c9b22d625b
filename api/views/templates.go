// Package views holds the HTML pages served to browsers.
package views

import (
	"html/template"

	"github.com/moyoez/localshare-go/types"
)

// Template names passed to gin's c.HTML.
const (
	RootPage     = "root"
	DirPage      = "dir"
	PinPage      = "pin"
	NotFoundPage = "notfound"
)

// PageData feeds every page. Unused fields are left zero.
type PageData struct {
	M           Messages
	Address     string
	Heading     string
	Breadcrumbs []types.Breadcrumb
	Rows        []types.ListingRow
	ZipURL      string
	ShowUpload  bool
	Path        string
	Error       string
}

const layout = `{{define "head"}}<!DOCTYPE html>
<html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.M.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:960px;padding:0 1rem;color:#222}
table{border-collapse:collapse;width:100%}th,td{text-align:left;padding:.4rem .6rem;border-bottom:1px solid #ddd}
.muted{color:#888}.error{color:#b00020}a{color:#0b57d0;text-decoration:none}
nav a+a:before{content:" / ";color:#888}
</style></head><body>{{end}}
{{define "foot"}}</body></html>{{end}}
{{define "table"}}<table>
<thead><tr><th>{{.M.ColName}}</th><th>{{.M.ColType}}</th><th>{{.M.ColSize}}</th><th>{{.M.ColActions}}</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{if .BrowseURL}}<a href="{{.BrowseURL}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</td>
<td>{{if .IsDir}}{{$.M.Folder}}{{else}}{{$.M.File}}{{end}}</td>
<td>{{.Size}}</td>
<td>{{if .BrowseURL}}<a href="{{.BrowseURL}}">{{$.M.Browse}}</a> {{end}}<a href="{{.DownloadURL}}">{{$.M.Download}}</a></td>
</tr>
{{else}}<tr><td colspan="4" class="muted">{{.Empty}}</td></tr>
{{end}}</tbody></table>{{end}}`

const rootPage = `{{define "root"}}{{template "head" .}}
<h1>{{.M.RootHeading}}</h1>
{{if .Address}}<p class="muted">{{.M.ServerAddress}}: {{.Address}}</p>{{end}}
{{template "table" (tableData . .M.Empty)}}
{{if .ShowUpload}}<h2>{{.M.UploadHeading}}</h2>
<form id="upload-form" method="post" action="/upload" enctype="multipart/form-data">
<input type="file" name="file" multiple> <button type="submit">{{.M.UploadButton}}</button>
</form>
<p id="upload-status" class="muted"></p>
<script>
document.getElementById("upload-form").addEventListener("submit", function (e) {
  e.preventDefault();
  var status = document.getElementById("upload-status");
  status.textContent = "…";
  fetch("/upload", {method: "POST", body: new FormData(e.target)})
    .then(function (r) { return r.json(); })
    .then(function (data) {
      status.textContent = data.message || data.error || "";
      if (data.success) { setTimeout(function () { location.reload(); }, 1000); }
    })
    .catch(function (err) { status.textContent = String(err); });
});
</script>{{end}}
{{template "foot" .}}{{end}}`

const dirPage = `{{define "dir"}}{{template "head" .}}
<nav>{{range .Breadcrumbs}}<a href="{{.URL}}">{{.Name}}</a>{{end}}</nav>
<h1>{{.Heading}}</h1>
<p><a href="{{.ZipURL}}">{{.M.DownloadZip}}</a></p>
{{template "table" (tableData . .M.EmptyDir)}}
{{template "foot" .}}{{end}}`

const pinPage = `{{define "pin"}}{{template "head" .}}
<h1>{{.M.PinHeading}}</h1>
<p>{{.M.PinPrompt}}</p>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/verify-pin">
<input type="password" name="pin" inputmode="numeric" maxlength="4" autofocus>
<button type="submit">{{.M.PinSubmit}}</button>
</form>
{{template "foot" .}}{{end}}`

const notFoundPage = `{{define "notfound"}}{{template "head" .}}
<h1>404 {{.M.NotFound}}</h1>
<p>{{.M.NotFoundPath}} <code>{{.Path}}</code></p>
<p><a href="/">{{.M.BackHome}}</a></p>
{{template "foot" .}}{{end}}`

// tableRows narrows PageData for the shared table block with its empty-state text.
type tableRows struct {
	M     Messages
	Rows  []types.ListingRow
	Empty string
}

// New parses the page set. It panics on a template error since the sources are constants.
func New() *template.Template {
	funcs := template.FuncMap{
		"tableData": func(p PageData, empty string) tableRows {
			return tableRows{M: p.M, Rows: p.Rows, Empty: empty}
		},
	}
	return template.Must(template.New("pages").Funcs(funcs).Parse(layout + rootPage + dirPage + pinPage + notFoundPage))
}

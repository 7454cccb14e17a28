package dashboard

import "html/template"

var pageTemplates = template.Must(template.New("dashboard").Parse(`
{{define "layout_top"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Coffee Shop Manager</title>
<style>
body { font-family: sans-serif; background: #1a1d21; color: #eee; margin: 0; padding: 20px; }
a { color: #61dafb; }
nav a { margin-right: 16px; }
table { border-collapse: collapse; margin-top: 12px; }
td, th { border-bottom: 1px solid #444; padding: 8px 12px; text-align: left; }
form.inline { display: inline; }
.card { background: #2d3238; border-radius: 8px; padding: 16px; margin: 10px 0; }
.pending { border-left: 8px solid #28a745; }
.completed { border-left: 8px solid #888; opacity: 0.6; }
button { padding: 6px 12px; border: none; border-radius: 4px; cursor: pointer; }
</style>
</head>
<body>
<nav>
<a href="/dashboard/menu">Menu admin</a>
<a href="/dashboard/shop">Shop</a>
<a href="/dashboard/orders">Orders</a>
</nav>
{{end}}
{{define "layout_bottom"}}</body></html>{{end}}

{{define "menu"}}{{template "layout_top" .}}
<h1>Menu ({{len .Items}} items)</h1>
<form method="post" action="/dashboard/menu">
<input name="name" placeholder="Item name" required>
<input name="price" type="number" min="0" placeholder="Price" required>
<button type="submit">Add item</button>
</form>
<table>
<tr><th>ID</th><th>Name</th><th>Price</th><th></th></tr>
{{range .Items}}
<tr>
<td>{{.ID}}</td>
<td>{{.Name}}</td>
<td>{{.Price}}</td>
<td>
<form class="inline" method="post" action="/dashboard/menu/{{.ID}}/update">
<input name="name" value="{{.Name}}">
<input name="price" type="number" min="0" value="{{.Price}}">
<button type="submit">Save</button>
</form>
<form class="inline" method="post" action="/dashboard/menu/{{.ID}}/delete">
<button type="submit">Delete</button>
</form>
</td>
</tr>
{{end}}
</table>
{{if .Message}}<p>{{.Message}}</p>{{end}}
{{template "layout_bottom" .}}{{end}}

{{define "shop"}}{{template "layout_top" .}}
<h1>Reak Smaay Coffee</h1>
{{range .Items}}
<div class="card">
<strong>{{.Name}}</strong> - {{.Price}}
<form class="inline" method="post" action="/dashboard/shop/cart">
<input type="hidden" name="name" value="{{.Name}}">
<button type="submit">+ Add to cart</button>
</form>
</div>
{{end}}
{{if .Cart.Lines}}
<h2>Your cart</h2>
<table>
{{range .Cart.Lines}}
<tr>
<td>{{.Name}}</td>
<td>x{{.Quantity}}</td>
<td>
<form class="inline" method="post" action="/dashboard/shop/cart/remove">
<input type="hidden" name="name" value="{{.Name}}">
<button type="submit">Remove</button>
</form>
</td>
</tr>
{{end}}
</table>
<p>Total: <strong>{{.Total}}</strong></p>
<form method="post" action="/dashboard/shop/checkout">
<button type="submit">Place order</button>
</form>
{{end}}
{{if .Message}}<p>{{.Message}}</p>{{end}}
{{template "layout_bottom" .}}{{end}}

{{define "orders"}}{{template "layout_top" .}}
<h1>Orders</h1>
{{if not .Orders}}<p>No orders yet.</p>{{end}}
{{range .Orders}}
<div class="card {{.Status}}">
<strong>#{{.ID}}</strong> - {{.Status}}<br>
{{.Items}}<br>
Total: {{.TotalPrice}}
<div>
{{if eq .Status "pending"}}
<form class="inline" method="post" action="/dashboard/orders/{{.ID}}/complete">
<button type="submit">Complete</button>
</form>
{{end}}
<form class="inline" method="post" action="/dashboard/orders/{{.ID}}/delete">
<button type="submit">Delete</button>
</form>
</div>
</div>
{{end}}
{{template "layout_bottom" .}}{{end}}
`))

package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/bcd-clock/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"orUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
	// bits renders a digit as the four BCD bits, MSB first.
	"bits": func(d int) string {
		if d < 0 || d > 15 {
			return "????"
		}
		return fmt.Sprintf("%04b", d)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>BCD Clock</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.time { font-size: 2em; }
.invalid { color: red; }
.pressed { color: green; font-weight: bold; }
.released { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>BCD Clock</h1>

<p class="time{{if not .Clock.Valid}} invalid{{end}}">{{orUnknown .Clock.Time}}</p>

<h2>Digits</h2>
<table>
<tr><th>Digit</th><td>{{range .Clock.Digits}}{{.}} {{end}}</td></tr>
<tr><th>BCD</th><td>{{range .Clock.Digits}}{{bits .}} {{end}}</td></tr>
<tr><th>Ticks</th><td>{{.Clock.Ticks}}</td></tr>
<tr><th>Adjustments</th><td>{{.Adjustments}}</td></tr>
</table>

<h2>Buttons</h2>
<table>
{{range .Buttons}}<tr><th>{{.Name}}</th><td class="{{if .Pressed}}pressed{{else}}released{{end}}">{{if .Pressed}}pressed{{else}}released{{end}} ({{.Pushes}} pushes)</td></tr>
{{else}}<tr><td>none</td></tr>
{{end}}</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Pins</th><td>{{.Config.Pins}} (pull-{{.Config.Pull}})</td></tr>
<tr><th>Heartbeat</th><td>{{if .Config.Heartbeat}}{{.Config.Heartbeat}}{{else}}disabled{{end}}</td></tr>
<tr><th>Resync</th><td>{{if .Config.Resync}}{{.Config.Resync}}{{else}}disabled{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> · <a href="/metrics">metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) error {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	return indexTmpl.Execute(w, data)
}

// Package export renders a positioned graph snapshot into a single
// self-contained HTML file: embedded data, a canvas renderer, and node
// summaries pre-rendered from markdown. The file opens anywhere without a
// server.
package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/codeatlas-dev/codeatlas/internal/graph"
	"github.com/codeatlas-dev/codeatlas/internal/host"
)

// Exporter writes standalone HTML exports.
type Exporter struct {
	Title string
}

// exportNode is a node plus its pre-rendered summary HTML.
type exportNode struct {
	*graph.Node
	SummaryHTML template.HTML `json:"summaryHtml,omitempty"`
}

type pageData struct {
	Title     string
	GraphJSON template.JS
}

// WriteFile renders snap to the given path.
func (e *Exporter) WriteFile(path string, snap host.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	return e.Write(f, snap)
}

// Write renders snap as HTML to w.
func (e *Exporter) Write(w io.Writer, snap host.Snapshot) error {
	nodes := make([]exportNode, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		en := exportNode{Node: n}
		if n.Summary != "" {
			rendered, err := RenderMarkdown(n.Summary)
			if err == nil {
				en.SummaryHTML = rendered
			}
		}
		nodes = append(nodes, en)
	}

	payload, err := json.Marshal(struct {
		Nodes []exportNode  `json:"nodes"`
		Edges []*graph.Edge `json:"edges"`
	}{nodes, snap.Edges})
	if err != nil {
		return fmt.Errorf("marshalling graph data: %w", err)
	}

	title := e.Title
	if title == "" {
		title = "Codebase Graph"
	}
	return pageTemplate.Execute(w, pageData{
		Title:     title,
		GraphJSON: template.JS(payload),
	})
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { margin: 0; font-family: -apple-system, "Segoe UI", sans-serif; background: #0f172a; color: #e2e8f0; }
  #atlas { display: block; width: 100vw; height: 100vh; }
  #panel { position: fixed; top: 12px; right: 12px; width: 320px; max-height: 80vh; overflow-y: auto;
           background: #1e293b; border-radius: 8px; padding: 12px 16px; display: none; }
  #panel h2 { margin: 0 0 8px; font-size: 14px; }
  #panel .summary { font-size: 12px; line-height: 1.5; }
  #panel code { background: #0f172a; padding: 1px 4px; border-radius: 3px; }
</style>
</head>
<body>
<canvas id="atlas"></canvas>
<div id="panel"><h2 id="panel-title"></h2><div id="panel-body" class="summary"></div></div>
<script id="graph-data" type="application/json">{{.GraphJSON}}</script>
<script>
(function () {
  var data = JSON.parse(document.getElementById("graph-data").textContent);
  var canvas = document.getElementById("atlas");
  var ctx = canvas.getContext("2d");
  var view = { x: 0, y: 0, scale: 1 };
  var byId = {};
  data.nodes.forEach(function (n) { byId[n.id] = n; });

  var colors = { root: "#f8fafc", directory: "#38bdf8", file: "#a78bfa", sticky: "#fde047" };

  function resize() {
    canvas.width = window.innerWidth;
    canvas.height = window.innerHeight;
    draw();
  }

  function toScreen(p) {
    return {
      x: canvas.width / 2 + (p.x + view.x) * view.scale,
      y: canvas.height / 2 + (p.y + view.y) * view.scale
    };
  }

  function draw() {
    ctx.clearRect(0, 0, canvas.width, canvas.height);
    data.edges.forEach(function (e) {
      var a = byId[e.source], b = byId[e.target];
      if (!a || !b) return;
      var pa = toScreen(a), pb = toScreen(b);
      ctx.strokeStyle = e.kind === "dependency" ? "#f472b6"
        : e.kind === "manual" ? "#fde047" : "#334155";
      ctx.lineWidth = Math.max(1, e.weight / 2);
      ctx.beginPath();
      ctx.moveTo(pa.x, pa.y);
      ctx.lineTo(pb.x, pb.y);
      ctx.stroke();
    });
    data.nodes.forEach(function (n) {
      var p = toScreen(n);
      var r = n.kind === "file" ? 6 + Math.min(n.traffic || 0, 8) : 10;
      ctx.fillStyle = n.color || colors[n.kind] || "#94a3b8";
      ctx.beginPath();
      ctx.arc(p.x, p.y, r, 0, 2 * Math.PI);
      ctx.fill();
      ctx.fillStyle = "#cbd5e1";
      ctx.font = "11px sans-serif";
      ctx.fillText(n.label, p.x + r + 3, p.y + 3);
    });
  }

  canvas.addEventListener("click", function (ev) {
    var hit = null;
    data.nodes.forEach(function (n) {
      var p = toScreen(n);
      var dx = ev.clientX - p.x, dy = ev.clientY - p.y;
      if (dx * dx + dy * dy < 200) hit = n;
    });
    var panel = document.getElementById("panel");
    if (!hit) { panel.style.display = "none"; return; }
    document.getElementById("panel-title").textContent = hit.label;
    document.getElementById("panel-body").innerHTML =
      hit.summaryHtml || hit.text || "<em>no summary</em>";
    panel.style.display = "block";
  });

  canvas.addEventListener("wheel", function (ev) {
    ev.preventDefault();
    view.scale *= ev.deltaY < 0 ? 1.1 : 0.9;
    draw();
  });

  var dragging = false, last = null;
  canvas.addEventListener("mousedown", function (ev) { dragging = true; last = ev; });
  window.addEventListener("mouseup", function () { dragging = false; });
  window.addEventListener("mousemove", function (ev) {
    if (!dragging) return;
    view.x += (ev.clientX - last.clientX) / view.scale;
    view.y += (ev.clientY - last.clientY) / view.scale;
    last = ev;
    draw();
  });

  window.addEventListener("resize", resize);
  resize();
})();
</script>
</body>
</html>
`))

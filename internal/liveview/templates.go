package liveview

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Comments</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
nav { display: flex; justify-content: space-between; align-items: center; }
.comments-list { list-style: none; padding: 0; }
.comment { display: flex; gap: 1rem; border-bottom: 1px solid #ddd; padding: .75rem 0; }
.vote-btns { text-align: center; }
.comment-image { max-width: 16rem; }
.loading .comments-list { opacity: .5; }
#error { color: #b00; }
</style>
</head>
<body>
<nav>
  <h1>Comments</h1>
  {{- with .Nav}}
  <a id="auth-btn" href="{{.Href}}">{{.Label}}</a>
  {{- end}}
</nav>
<form id="controls">
  <label>Sort by
    <select id="sort-type">
      {{- range .Sorts}}
      <option value="{{.}}"{{if eq . $.Sort}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
  </label>
  <label>Show
    <select id="quantity">
      {{- range .Sizes}}
      <option value="{{.}}"{{if eq . $.Quantity}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
  </label>
</form>
<form id="add-comment">
  <textarea id="comment-text" rows="3" placeholder="Leave a comment"></textarea>
  <button type="submit">Post</button>
</form>
<p id="error" hidden></p>
<div id="comments">{{.List}}</div>
<script>
(function () {
  var root = document.getElementById("comments");
  var errBox = document.getElementById("error");
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  function send(msg) { ws.send(JSON.stringify(msg)); }
  ws.onmessage = function (e) {
    var m = JSON.parse(e.data);
    if (m.type === "loading") { document.body.classList.add("loading"); return; }
    document.body.classList.remove("loading");
    if (m.type === "error") { errBox.textContent = m.message; errBox.hidden = false; return; }
    if (m.type === "comments") {
      errBox.hidden = true;
      root.innerHTML = m.html;
      document.getElementById("sort-type").value = m.sort;
      document.getElementById("quantity").value = m.quantity;
    }
  };
  root.addEventListener("click", function (e) {
    var b = e.target.closest("button[data-action]");
    if (!b) return;
    if (b.dataset.action === "vote") send({type: "vote", id: b.dataset.id, upvote: b.dataset.upvote === "true"});
    if (b.dataset.action === "delete") send({type: "delete", id: b.dataset.id});
  });
  document.getElementById("add-comment").addEventListener("submit", function (e) {
    e.preventDefault();
    var box = document.getElementById("comment-text");
    if (box.value.trim() === "") return;
    send({type: "add", text: box.value});
    box.value = "";
  });
  document.getElementById("sort-type").addEventListener("change", function (e) { send({type: "sort", value: e.target.value}); });
  document.getElementById("quantity").addEventListener("change", function (e) { send({type: "quantity", value: e.target.value}); });
})();
</script>
</body>
</html>
`

package web

import (
	"html/template"
	"time"
)

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"formatTime": formatTime,
	}
	return template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02 15:04")
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Workshop · {{.Title}}</title>
  <style>
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: #fcfaf6;
    }
    body.theme-dark {
      color: #ece6dc;
      background: #1f1b17;
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
    }
    header h1 {
      margin: 0 0 8px 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    nav {
      display: flex;
      gap: 12px;
    }
    nav a {
      padding: 6px 12px;
      border-radius: 999px;
      text-decoration: none;
      color: inherit;
      border: 1px solid transparent;
    }
    nav a.active {
      border-color: #d1c6b6;
      font-weight: 600;
    }
    main {
      padding: 18px 24px 28px;
      max-width: 960px;
    }
    .pane {
      border: 1px solid #d7cdbd;
      border-radius: 14px;
      padding: 16px 20px;
      margin-bottom: 18px;
    }
    .muted {
      color: #8a7e72;
    }
    .error {
      color: #9b2c2c;
      font-weight: 600;
    }
    .completed .text {
      text-decoration: line-through;
    }
    ul.items {
      list-style: none;
      padding: 0;
    }
    ul.items li {
      display: flex;
      gap: 8px;
      align-items: center;
      padding: 4px 0;
    }
    form.inline {
      display: inline;
    }
  </style>
</head>
<body class="theme-{{.Theme}}">
  <header>
    <h1>Workshop</h1>
    <nav>
      {{range .Nav}}
        <a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Name}}</a>
      {{end}}
    </nav>
  </header>
  <main>
    <article class="view">{{.Body}}</article>
    {{with .State}}
      {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
      <section class="pane" id="todos">
        <h2>Todos</h2>
        <p class="stats">{{.Stats.Total}} total, {{.Stats.Active}} active, {{.Stats.Completed}} completed ({{.Stats.CompletionRate}}% done)</p>
        <form method="post" action="/web/todos/add">
          <input type="text" name="text" placeholder="What needs doing?" required>
          <select name="priority">
            {{range .PriorityOptions}}
              <option value="{{.Value}}"{{if eq .Value "medium"}} selected{{end}}>{{.Label}}</option>
            {{end}}
          </select>
          <button type="submit">Add</button>
        </form>
        <form method="post" action="/web/todos/filter">
          <select name="filter">
            {{range .FilterOptions}}
              <option value="{{.Value}}"{{if eq .Value $.State.Filter}} selected{{end}}>{{.Label}}</option>
            {{end}}
          </select>
          <button type="submit">Filter</button>
        </form>
        {{if .Todos}}
          <ul class="items">
            {{range .Todos}}
              <li class="{{if .Completed}}completed{{else}}active{{end}}">
                <form class="inline" method="post" action="/web/todos/toggle">
                  <input type="hidden" name="id" value="{{.ID}}">
                  <button type="submit">{{if .Completed}}Undo{{else}}Done{{end}}</button>
                </form>
                <span class="text">{{.Text}}</span>
                <span class="priority muted">{{.Priority}}</span>
                <span class="created muted">{{formatTime .CreatedAt}}</span>
                <form class="inline" method="post" action="/web/todos/remove">
                  <input type="hidden" name="id" value="{{.ID}}">
                  <button type="submit">Remove</button>
                </form>
              </li>
            {{end}}
          </ul>
        {{else}}
          <p class="muted">No todos.</p>
        {{end}}
        <form class="inline" method="post" action="/web/todos/mark-all">
          <input type="hidden" name="completed" value="true">
          <button type="submit">Mark all complete</button>
        </form>
        <form class="inline" method="post" action="/web/todos/mark-all">
          <input type="hidden" name="completed" value="false">
          <button type="submit">Mark all incomplete</button>
        </form>
        <form class="inline" method="post" action="/web/todos/clear">
          <button type="submit">Clear completed</button>
        </form>
        <h3>By priority</h3>
        <dl class="by-priority">
          {{range .ByPriority}}
            <dt>{{.Priority}}</dt>
            <dd>{{len .Todos}}</dd>
          {{end}}
        </dl>
      </section>
      <section class="pane" id="user">
        <h2>User</h2>
        {{if .LoggedIn}}
          <p class="session">Logged in as <strong>{{.CurrentUser.Name}}</strong> &lt;{{.CurrentUser.Email}}&gt;</p>
          <form method="post" action="/web/users/profile">
            <input type="text" name="name" value="{{.CurrentUser.Name}}">
            <input type="email" name="email" value="{{.CurrentUser.Email}}">
            <button type="submit">Update profile</button>
          </form>
          <form method="post" action="/web/users/logout">
            <button type="submit">Log out</button>
          </form>
        {{else}}
          <p class="session muted">Not logged in.</p>
          <form method="post" action="/web/users/login">
            <input type="text" name="name" placeholder="Name" required>
            <input type="email" name="email" placeholder="Email" required>
            <button type="submit">Log in</button>
          </form>
        {{end}}
        <h3>Preferences</h3>
        <form method="post" action="/web/users/preferences">
          <select name="theme">
            {{range .ThemeOptions}}
              <option value="{{.Value}}"{{if eq .Value $.State.Preferences.Theme}} selected{{end}}>{{.Label}}</option>
            {{end}}
          </select>
          <label><input type="checkbox" name="notifications" value="on"{{if .Preferences.Notifications}} checked{{end}}>Notifications</label>
          <label><input type="checkbox" name="auto_save" value="on"{{if .Preferences.AutoSave}} checked{{end}}>Auto-save</label>
          <button type="submit">Save</button>
        </form>
        <h3>Directory ({{.UserCount}})</h3>
        <ul class="users">
          {{range .Users}}
            <li>{{.Name}} <span class="muted">{{.Email}}</span></li>
          {{end}}
        </ul>
        <form method="post" action="/web/users/add">
          <input type="text" name="name" placeholder="Name" required>
          <input type="email" name="email" placeholder="Email" required>
          <button type="submit">Add user</button>
        </form>
      </section>
    {{end}}
  </main>
</body>
</html>
`

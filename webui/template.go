package webui

const indexTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Thumbforge</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            max-width: 800px;
            margin: 40px auto;
            padding: 20px;
            line-height: 1.6;
        }
        .header {
            border-bottom: 2px solid #333;
            padding-bottom: 20px;
            margin-bottom: 30px;
        }
        label { display: block; margin-top: 15px; font-weight: 600; }
        input, select {
            width: 100%;
            padding: 8px;
            margin-top: 5px;
            border: 1px solid #ccc;
            border-radius: 4px;
            box-sizing: border-box;
        }
        .button {
            margin-top: 25px;
            padding: 12px 40px;
            font-size: 16px;
            border: none;
            border-radius: 6px;
            cursor: pointer;
            font-weight: 600;
            background: #28a745;
            color: white;
        }
        .button:disabled { background: #999; cursor: wait; }
        #status { margin-top: 20px; padding: 10px; border-radius: 4px; }
        #status.error { background: #fdecea; color: #b71c1c; }
        #status.ok { background: #e8f5e9; color: #1b5e20; }
        #preview { max-width: 100%; margin-top: 20px; border-radius: 8px; display: none; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Thumbforge</h1>
        <p>Compose a blog thumbnail from a background photo, a title and icons.</p>
    </div>

    <form id="form">
        <label>Title
            <input type="text" id="title" placeholder="My Great Blog Post" required>
        </label>
        <label>Background image
            <input type="file" id="background" accept="image/*" required>
        </label>
        <label>Icon files (optional)
            <input type="file" id="icons" accept="image/*,.svg" multiple>
        </label>
        <label>Icon search terms, comma separated (optional)
            <input type="text" id="queries" placeholder="python, docker, linux">
        </label>
        <label>Format
            <select id="format">
                {{range .Formats}}<option value="{{.}}">{{.}}</option>{{end}}
            </select>
        </label>
        <button class="button" type="submit" id="go">Generate</button>
    </form>

    <div id="status"></div>
    <p id="download" style="display:none"><a id="downloadLink" href="#">Download thumbnail</a></p>
    <img id="preview" alt="thumbnail preview">

    <script>
        const form = document.getElementById('form');
        const status = document.getElementById('status');

        form.addEventListener('submit', async (e) => {
            e.preventDefault();
            const go = document.getElementById('go');
            go.disabled = true;
            status.className = '';
            status.textContent = 'Uploading...';

            try {
                const fd = new FormData();
                fd.append('background_image', document.getElementById('background').files[0]);
                const iconInput = document.getElementById('icons');
                for (let i = 0; i < iconInput.files.length; i++) {
                    fd.append('icon_' + i, iconInput.files[i]);
                }

                const up = await (await fetch('/upload', {method: 'POST', body: fd})).json();
                if (!up.success) throw new Error(up.message);

                status.textContent = 'Generating...';
                const queries = document.getElementById('queries').value
                    .split(',').map(s => s.trim()).filter(s => s);
                const gen = await (await fetch('/generate', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({
                        title: document.getElementById('title').value,
                        background_file: up.files.background,
                        icon_files: up.files.icons,
                        icon_queries: queries,
                        format: document.getElementById('format').value,
                    }),
                })).json();
                if (!gen.success) throw new Error(gen.message);

                status.className = 'ok';
                status.textContent = gen.message;
                const link = document.getElementById('downloadLink');
                link.href = gen.download_url;
                document.getElementById('download').style.display = 'block';
                const preview = document.getElementById('preview');
                if (gen.preview) {
                    preview.src = gen.preview;
                    preview.style.display = 'block';
                } else {
                    preview.style.display = 'none';
                }
            } catch (err) {
                status.className = 'error';
                status.textContent = err.message;
            } finally {
                go.disabled = false;
            }
        });
    </script>
</body>
</html>
`

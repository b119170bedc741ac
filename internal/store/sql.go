package store

const qUpsertBlob = `--sql 3f1c9a52-78d0-4c4f-9a6e-2f1de0c6b8a4
insert into kv_blobs(key, blob, updated_at)
values ($1::text, $2::jsonb, now())
on conflict (key) do update set blob = excluded.blob, updated_at = now();
`

const qSelectBlob = `--sql b6a0e7d1-24f3-4b5c-8d19-7c3e5a90f2bd
select blob
from kv_blobs
where key = $1::text;
`

const qDeleteBlob = `--sql 1d84c3fa-9e62-47a8-b0d5-6f28a1e47c93
delete from kv_blobs
where key = $1::text;
`

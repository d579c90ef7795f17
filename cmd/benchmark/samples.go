package main

// Sample is one source file sent to the API.
type Sample struct {
	Name     string
	Filename string
	Code     string
}

// Samples are uncommented source files of increasing size in several
// languages. Used by the default timing mode.
var Samples = []Sample{
	{
		Name:     "tiny",
		Filename: "add.py",
		Code: `def add(a, b):
    return a + b
`,
	},
	{
		Name:     "short",
		Filename: "retry.go",
		Code: `package retry

import "time"

func Do(attempts int, wait time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(wait)
		wait *= 2
	}
	return err
}
`,
	},
	{
		Name:     "medium",
		Filename: "lru.js",
		Code: `class LRUCache {
  constructor(capacity) {
    this.capacity = capacity;
    this.map = new Map();
  }

  get(key) {
    if (!this.map.has(key)) return -1;
    const value = this.map.get(key);
    this.map.delete(key);
    this.map.set(key, value);
    return value;
  }

  put(key, value) {
    if (this.map.has(key)) this.map.delete(key);
    this.map.set(key, value);
    if (this.map.size > this.capacity) {
      const oldest = this.map.keys().next().value;
      this.map.delete(oldest);
    }
  }
}

module.exports = LRUCache;
`,
	},
	{
		Name:     "long",
		Filename: "matrix.cpp",
		Code: `#include <vector>
#include <stdexcept>

using Matrix = std::vector<std::vector<double>>;

Matrix multiply(const Matrix& a, const Matrix& b) {
    if (a.empty() || b.empty() || a[0].size() != b.size()) {
        throw std::invalid_argument("shape mismatch");
    }
    size_t n = a.size(), m = b[0].size(), k = b.size();
    Matrix out(n, std::vector<double>(m, 0.0));
    for (size_t i = 0; i < n; ++i) {
        for (size_t p = 0; p < k; ++p) {
            double x = a[i][p];
            if (x == 0.0) continue;
            for (size_t j = 0; j < m; ++j) {
                out[i][j] += x * b[p][j];
            }
        }
    }
    return out;
}

Matrix identity(size_t n) {
    Matrix id(n, std::vector<double>(n, 0.0));
    for (size_t i = 0; i < n; ++i) id[i][i] = 1.0;
    return id;
}

Matrix power(Matrix base, unsigned exp) {
    Matrix result = identity(base.size());
    while (exp > 0) {
        if (exp & 1u) result = multiply(result, base);
        base = multiply(base, base);
        exp >>= 1u;
    }
    return result;
}
`,
	},
}

// QualitySamples exercise edge cases worth eyeballing: no extension,
// unusual languages and code that already has a few comments.
var QualitySamples = []Sample{
	{
		Name:     "makefile",
		Filename: "Makefile",
		Code: `build:
	go build -o bin/app ./cmd/app

test:
	go test ./...
`,
	},
	{
		Name:     "sql",
		Filename: "report.sql",
		Code: `SELECT c.name, SUM(o.total) AS revenue
FROM customers c
JOIN orders o ON o.customer_id = c.id
WHERE o.created_at >= NOW() - INTERVAL '30 days'
GROUP BY c.name
HAVING SUM(o.total) > 1000
ORDER BY revenue DESC;
`,
	},
	{
		Name:     "rust",
		Filename: "fib.rs",
		Code: `// memoised fibonacci
fn fib(n: u64, memo: &mut Vec<Option<u64>>) -> u64 {
    if n < 2 { return n; }
    if let Some(v) = memo[n as usize] { return v; }
    let v = fib(n - 1, memo) + fib(n - 2, memo);
    memo[n as usize] = Some(v);
    v
}
`,
	},
	{
		Name:     "shell",
		Filename: "deploy.sh",
		Code: `#!/usr/bin/env bash
set -euo pipefail
git pull --ff-only
docker compose build
docker compose up -d --remove-orphans
`,
	},
}

// Package seed 建立初始管理員，重複執行不會產生第二筆
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"job-board/internal/apperr"
	"job-board/internal/database"
	"job-board/internal/dto"
	"job-board/internal/model"
	"job-board/internal/schema"
	"job-board/internal/store"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEmail    = "admin@jobboard.local"
	DefaultName     = "Admin"
	DefaultPassword = "ChangeMe123!"
)

type AdminSeed struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	// Reset 為 true 時，已存在的 admin 會被覆寫 name 與 password
	Reset bool `yaml:"reset"`
}

type File struct {
	Admin AdminSeed `yaml:"admin"`
}

// Result 描述這次 Run 做了什麼
type Result struct {
	Admin   *model.Admin
	Created bool
	Updated bool
}

var (
	getAdminByEmail = store.GetAdminByEmail
	createAdmin     = store.CreateAdmin
	updateAdmin     = store.UpdateAdmin
)

func Default() File {
	return File{Admin: AdminSeed{
		Email:    DefaultEmail,
		Name:     DefaultName,
		Password: DefaultPassword,
	}}
}

// Parse 以 YAML 內容覆蓋預設值，沒寫到的欄位保留預設
func Parse(r io.Reader) (File, error) {
	f := Default()
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, nil
}

func LoadFile(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

func Run(ctx context.Context, db database.DB, f File) (Result, error) {
	email := schema.NormalizeEmail(f.Admin.Email)
	existing, err := getAdminByEmail(ctx, db, email)
	switch {
	case apperr.IsNotFound(err):
		admin, err := schema.LoadAdmin(dto.RegisterRequest{
			Email:    email,
			Name:     f.Admin.Name,
			Password: f.Admin.Password,
		})
		if err != nil {
			return Result{}, err
		}
		admin, err = createAdmin(ctx, db, admin)
		if err != nil {
			return Result{}, err
		}
		return Result{Admin: admin, Created: true}, nil
	case err != nil:
		return Result{}, err
	}

	if !f.Admin.Reset {
		return Result{Admin: existing}, nil
	}

	raw, err := json.Marshal(map[string]string{
		"name":     f.Admin.Name,
		"password": f.Admin.Password,
	})
	if err != nil {
		return Result{}, err
	}
	fields, err := schema.LoadAdminPartial(raw)
	if err != nil {
		return Result{}, err
	}
	if err := updateAdmin(ctx, db, existing.ID, fields); err != nil {
		return Result{}, err
	}
	existing.Name = f.Admin.Name
	return Result{Admin: existing, Updated: true}, nil
}

// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

// Package schema centralizes table and column names so SQL builders never
// embed magic strings.
package schema

import "strings"

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Nickname    string
	Email       string
	Password    string
	MFAType     string
	MFAKey      string
	Avatar      string
	Description string
	ExpireTime  string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Nickname:    "nickname",
	Email:       "email",
	Password:    "passwordhash",
	MFAType:     "mfatype",
	MFAKey:      "mfakey",
	Avatar:      "avatar",
	Description: "description",
	ExpireTime:  "expiretime",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Nickname, t.Email, t.Password, t.MFAType,
		t.MFAKey, t.Avatar, t.Description, t.ExpireTime, t.CreatedAt,
		t.UpdatedAt,
	}
}

// ColumnList returns the comma-joined column list for SELECT statements.
func (t UserAccountTable) ColumnList() string {
	return strings.Join(t.Columns(), ", ")
}

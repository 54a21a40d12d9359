package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type memberRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// GET /api/members
func GetMembers(c *gin.Context) {
	members, err := memberService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// GET /api/members/:id
func GetMemberByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	member, err := memberService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// POST /api/members
func CreateMember(c *gin.Context) {
	var req memberRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	member, err := memberService(c).Create(req.Name, req.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Member added successfully", "member": member})
}

// PUT /api/members/:id
func UpdateMember(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req memberRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	member, err := memberService(c).Update(id, req.Name, req.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member updated successfully", "member": member})
}

// DELETE /api/members/:id
func DeleteMember(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := memberService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

package mockapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idilsaglam/bikerental/internal/model"
)

type bikeInput struct {
	Brand  string `json:"marca" binding:"required"`
	Model  string `json:"modelo" binding:"required"`
	City   string `json:"cidade" binding:"required"`
	Status string `json:"status" binding:"required"`
}

func (in bikeInput) validate() string {
	for _, s := range model.Statuses() {
		if model.Status(in.Status) == s {
			return ""
		}
	}
	return "status inválido: " + in.Status
}

type userInput struct {
	Name      string `json:"nome" binding:"required"`
	Document  string `json:"cpf" binding:"required"`
	BirthDate string `json:"data_nascimento" binding:"required"`
}

func (s *Server) listBikes(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(200, s.state.Bikes)
}

func (s *Server) createBike(c *gin.Context) {
	var in bikeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if msg := in.validate(); msg != "" {
		badRequest(c, msg)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state.clone()
	b := model.Bike{ID: newID(), Brand: in.Brand, Model: in.Model, City: in.City, Status: model.Status(in.Status)}
	s.state.Bikes = append(s.state.Bikes, b)
	s.commit(c, prev, b)
}

func (s *Server) updateBike(c *gin.Context) {
	var in bikeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if msg := in.validate(); msg != "" {
		badRequest(c, msg)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.bike(c.Param("id"))
	if i < 0 {
		notFound(c, "bicicleta")
		return
	}
	prev := s.state.clone()
	b := &s.state.Bikes[i]
	b.Brand, b.Model, b.City, b.Status = in.Brand, in.Model, in.City, model.Status(in.Status)
	s.commit(c, prev, *b)
}

func (s *Server) deleteBike(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	i := s.state.bike(id)
	if i < 0 {
		notFound(c, "bicicleta")
		return
	}
	if s.state.openLoan(func(l model.Loan) bool { return l.BikeID == id }) {
		badRequest(c, "bicicleta possui empréstimo ativo")
		return
	}
	prev := s.state.clone()
	b := s.state.Bikes[i]
	s.state.Bikes = remove(s.state.Bikes, i)
	s.commit(c, prev, b)
}

func (s *Server) listUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(200, s.state.Users)
}

func (s *Server) createUser(c *gin.Context) {
	var in userInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state.clone()
	u := model.User{ID: newID(), Name: in.Name, Document: in.Document, BirthDate: in.BirthDate}
	s.state.Users = append(s.state.Users, u)
	s.commit(c, prev, u)
}

func (s *Server) updateUser(c *gin.Context) {
	var in userInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.user(c.Param("id"))
	if i < 0 {
		notFound(c, "usuário")
		return
	}
	prev := s.state.clone()
	u := &s.state.Users[i]
	u.Name, u.Document, u.BirthDate = in.Name, in.Document, in.BirthDate
	s.commit(c, prev, *u)
}

func (s *Server) deleteUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	i := s.state.user(id)
	if i < 0 {
		notFound(c, "usuário")
		return
	}
	if s.state.openLoan(func(l model.Loan) bool { return l.UserID == id }) {
		badRequest(c, "usuário possui empréstimo ativo")
		return
	}
	prev := s.state.clone()
	u := s.state.Users[i]
	s.state.Users = remove(s.state.Users, i)
	s.commit(c, prev, u)
}

func (s *Server) listLoans(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(200, s.state.Loans)
}

// createLoan rents a bike: the bike must exist and be available, and it
// switches to "em uso" in the same step.
func (s *Server) createLoan(c *gin.Context) {
	userID, bikeID := c.Param("userId"), c.Param("bikeId")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.user(userID) < 0 {
		notFound(c, "usuário")
		return
	}
	bi := s.state.bike(bikeID)
	if bi < 0 {
		notFound(c, "bicicleta")
		return
	}
	if !s.state.Bikes[bi].Available() {
		badRequest(c, "bicicleta não está disponível")
		return
	}
	prev := s.state.clone()
	loan := model.Loan{
		ID:       newID(),
		UserID:   userID,
		BikeID:   bikeID,
		LoanedAt: s.opts.Now().UTC().Format(time.RFC3339),
	}
	s.state.Bikes[bi].Status = model.StatusInUse
	s.state.Loans = append(s.state.Loans, loan)
	s.commit(c, prev, loan)
}

// returnLoan closes a loan and makes its bike available again.
func (s *Server) returnLoan(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.loan(strings.TrimSpace(c.Param("id")))
	if i < 0 {
		notFound(c, "empréstimo")
		return
	}
	prev := s.state.clone()
	loan := s.state.Loans[i]
	if bi := s.state.bike(loan.BikeID); bi >= 0 {
		s.state.Bikes[bi].Status = model.StatusAvailable
	}
	s.state.Loans = remove(s.state.Loans, i)
	s.commit(c, prev, loan)
}
